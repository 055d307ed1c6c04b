package dto

import "github.com/spec-kit/au-connect/internal/service"

// StudentDashboardResponse is the payload of GET /dashboard.
type StudentDashboardResponse struct {
	User           UserResponse    `json:"user"`
	JoinedClubs    []ClubResponse  `json:"joinedClubs"`
	AvailableClubs []ClubResponse  `json:"availableClubs"`
	Events         []EventResponse `json:"events"`
}

// NewStudentDashboardResponse maps the service read model.
func NewStudentDashboardResponse(d *service.StudentDashboard) StudentDashboardResponse {
	return StudentDashboardResponse{
		User:           NewUserResponse(d.User),
		JoinedClubs:    NewClubViewResponses(d.JoinedClubs),
		AvailableClubs: NewClubViewResponses(d.AvailableClubs),
		Events:         NewEventViewResponses(d.Events),
	}
}

// AdminOverviewResponse is the payload of GET /admin/overview.
type AdminOverviewResponse struct {
	Clubs              []ClubResponse  `json:"clubs"`
	Events             []EventResponse `json:"events"`
	TotalClubs         int             `json:"totalClubs"`
	TotalEvents        int             `json:"totalEvents"`
	TotalMembers       int             `json:"totalMembers"`
	TotalRegistrations int             `json:"totalRegistrations"`
}

// NewAdminOverviewResponse maps the service read model.
func NewAdminOverviewResponse(o *service.AdminOverview) AdminOverviewResponse {
	return AdminOverviewResponse{
		Clubs:              NewClubViewResponses(o.Clubs),
		Events:             NewEventViewResponses(o.Events),
		TotalClubs:         len(o.Clubs),
		TotalEvents:        len(o.Events),
		TotalMembers:       o.TotalMembers,
		TotalRegistrations: o.TotalRegistrations,
	}
}
