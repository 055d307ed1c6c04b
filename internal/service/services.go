package service

import (
	"github.com/spec-kit/au-connect/internal/config"
)

// Services is the full set of application services over one store.
type Services struct {
	Auth          *AuthService
	Users         *UserService
	Clubs         *ClubService
	Events        *EventService
	Memberships   *MembershipLedger
	Registrations *RegistrationLedger
	Coordinator   *Coordinator
	Dashboard     *DashboardService
}

// NewServices wires every service to deps.Store.
func NewServices(cfg config.AuthConfig, deps LedgerDependencies) *Services {
	s := &Services{
		Auth:          NewAuthService(cfg, deps.Store.Users),
		Users:         NewUserService(deps.Store.Users),
		Clubs:         NewClubService(deps.Store.Clubs),
		Events:        NewEventService(deps.Store.Events),
		Memberships:   NewMembershipLedger(deps),
		Registrations: NewRegistrationLedger(deps),
	}
	s.Coordinator = NewCoordinator(deps, s.Memberships, s.Registrations)
	s.Dashboard = NewDashboardService(s.Clubs, s.Events, s.Users, s.Memberships, s.Registrations, s.Coordinator)
	return s
}
