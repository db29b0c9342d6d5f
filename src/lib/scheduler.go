package lib

import (
	"log"

	"github.com/go-co-op/gocron/v2"
)

func NewScheduler() (gocron.Scheduler, error) {
	sched, err := gocron.NewScheduler()
	if err != nil {
		log.Printf("Error initializing Scheduler: %s\n", err.Error())
		return nil, err
	}
	return sched, nil
}

// ScheduleDaily registers task to run every day at hour:minute in the scheduler's location.
func ScheduleDaily(sched gocron.Scheduler, name string, hour, minute uint, task any, args ...any) (string, error) {
	j, err := sched.NewJob(
		gocron.DailyJob(1, gocron.NewAtTimes(gocron.NewAtTime(hour, minute, 0))),
		gocron.NewTask(task, args...),
		gocron.WithName(name),
	)
	if err != nil {
		return "", err
	}
	id := j.ID().String()
	log.Printf("Job: %s %s\n", id, j.Name())
	return id, nil
}
