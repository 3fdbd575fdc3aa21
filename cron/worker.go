package cron

import (
	"context"
	"log"
	"time"

	"campuscare/config"
	"campuscare/services/booking"

	"github.com/hibiken/asynq"
)

const TypeCompletePastBookings = "booking:complete_past"

// completePastEvery is the interval the sweep task is enqueued at.
const completePastEvery = "@every 1h"

// InitBookingWorker runs the async worker and its scheduler in the
// background. The worker periodically marks past Confirmed bookings
// Completed so slots and statistics stay accurate without admin action.
func InitBookingWorker(svc booking.BookingService) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 5,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeCompletePastBookings, handleCompletePast(svc))

	// Start async worker with retry logic.
	go func() {
		log.Println("[BookingWorker] starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[BookingWorker] attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[BookingWorker] max retry attempts reached. Exiting.")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second)
			} else {
				break
			}
		}
	}()

	scheduler := asynq.NewScheduler(redisOpts, &asynq.SchedulerOpts{})
	if _, err := scheduler.Register(completePastEvery, asynq.NewTask(TypeCompletePastBookings, nil)); err != nil {
		log.Printf("[BookingWorker] failed to register sweep schedule: %v", err)
		return
	}
	go func() {
		if err := scheduler.Run(); err != nil {
			log.Printf("[BookingWorker] scheduler stopped: %v", err)
		}
	}()
}

func handleCompletePast(svc booking.BookingService) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		count, err := svc.CompletePast(ctx)
		if err != nil {
			log.Printf("[BookingWorker] sweep failed: %v", err)
			return err
		}
		if count > 0 {
			log.Printf("[BookingWorker] marked %d past bookings completed", count)
		}
		return nil
	}
}
