package services

import (
	"context"
	"food-rescue-service/internal/domain"
	"food-rescue-service/internal/ports"
	"log"
	"strings"
	"time"
)

const (
	urgentPerishability = 8.0
	urgentAfterMinutes  = 30
)

// DriverAssigner decides between volunteer and courier dispatch.
type DriverAssigner struct {
	advisor ports.DriverAdvisor
	timeout time.Duration
}

func NewDriverAssigner(advisor ports.DriverAdvisor, timeout time.Duration) *DriverAssigner {
	if timeout <= 0 {
		timeout = DefaultProviderTimeout
	}
	return &DriverAssigner{advisor: advisor, timeout: timeout}
}

// Decide asks the advisor when configured and otherwise applies the urgency rule:
// courier when no volunteer is available or when highly perishable food has
// waited more than half an hour.
func (a *DriverAssigner) Decide(ctx context.Context, perishability float64, volunteerAvailable bool, minutesSincePosted int) domain.DriverAssignment {
	if a.advisor != nil {
		actx, cancel := context.WithTimeout(ctx, a.timeout)
		out, err := a.advisor.AdviseDriverType(actx, perishability, volunteerAvailable, minutesSincePosted)
		cancel()
		if err == nil {
			if strings.Contains(strings.ToLower(out), string(domain.DriverCourier)) {
				return domain.DriverAssignment{Type: domain.DriverCourier, Reason: "Advisor determined courier needed based on urgency"}
			}
			return domain.DriverAssignment{Type: domain.DriverVolunteer, Reason: "Advisor determined volunteer assignment appropriate"}
		}
		log.Printf("advisor unavailable err=%v", err)
	}

	switch {
	case !volunteerAvailable:
		return domain.DriverAssignment{Type: domain.DriverCourier, Reason: "No volunteers available"}
	case perishability > urgentPerishability && minutesSincePosted > urgentAfterMinutes:
		return domain.DriverAssignment{Type: domain.DriverCourier, Reason: "Highly perishable food, urgent pickup needed"}
	default:
		return domain.DriverAssignment{Type: domain.DriverVolunteer, Reason: "Volunteer assignment appropriate"}
	}
}
