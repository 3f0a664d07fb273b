// Command mocknet-demo wraps a sample in-process service with the mock
// network layer and drives it through a circuit breaker, showing how injected
// latency and failures exercise resilience code without any real transport.
package main

import (
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"
	"golang.org/x/sync/errgroup"

	"github.com/guoGavin/retrofit/pkg/client"
	"github.com/guoGavin/retrofit/pkg/mocknet"
)

// WeatherService is the demo service definition.
type WeatherService struct {
	Current func(city string) (string, error)
}

func main() {
	log := logrus.New()
	log.SetLevel(logrus.DebugLevel)

	cfg, err := client.NewBuilder().
		BaseURL("http://weather.mock.local").
		Logger(log).
		Build()
	if err != nil {
		log.WithError(err).Fatal("failed to build client config")
	}

	mock := mocknet.From(cfg, client.GoExecutor{})

	profile, err := mocknet.LoadProfile()
	if err != nil {
		log.WithError(err).Fatal("failed to load simulation profile")
	}
	if err := mock.ApplyProfile(profile); err != nil {
		log.WithError(err).Fatal("failed to apply simulation profile")
	}

	// Flaky-but-fast settings so the breaker has something to chew on.
	if err := mock.SetDelay(20); err != nil {
		log.WithError(err).Fatal("failed to set delay")
	}
	if err := mock.SetErrorPercentage(25); err != nil {
		log.WithError(err).Fatal("failed to set error percentage")
	}

	svc := mock.Create(&WeatherService{
		Current: func(city string) (string, error) {
			return "sunny in " + city, nil
		},
	}).(*WeatherService)

	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "weather",
		MaxRequests: 2,
		Interval:    5 * time.Second,
		Timeout:     2 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= 5 && failureRatio >= 0.5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.WithFields(logrus.Fields{
				"breaker": name,
				"from":    from.String(),
				"to":      to.String(),
			}).Warn("circuit breaker state changed")
		},
	})

	var succeeded, failed atomic.Int64
	g := new(errgroup.Group)
	g.SetLimit(4)
	for i := 0; i < 40; i++ {
		g.Go(func() error {
			result, err := breaker.Execute(func() (interface{}, error) {
				return svc.Current("Reykjavik")
			})
			if err != nil {
				failed.Add(1)
				log.WithError(err).Debug("call failed")
				return nil
			}
			succeeded.Add(1)
			log.WithField("result", result).Debug("call succeeded")
			return nil
		})
	}
	_ = g.Wait()

	log.WithFields(logrus.Fields{
		"succeeded":     succeeded.Load(),
		"failed":        failed.Load(),
		"breaker_state": breaker.State().String(),
	}).Info("demo complete")
}
