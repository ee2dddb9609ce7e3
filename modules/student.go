package modules

import (
	"context"

	"github.com/petal-labs/jutge/core"
)

// Profile is the profile of the logged in user.
type Profile struct {
	UserUID  string `json:"user_uid"`
	Email    string `json:"email"`
	Name     string `json:"name"`
	Username string `json:"username"`
	Nickname string `json:"nickname"`
	Country  string `json:"country_id"`
}

// AbstractStatus is the status of the user on an abstract problem.
type AbstractStatus struct {
	ProblemNm   string `json:"problem_nm"`
	Status      string `json:"status"`
	Submissions int    `json:"nb_submissions"`
	Accepted    int    `json:"nb_accepted_submissions"`
}

// Student wraps the student module. All its functions need a session.
type Student struct {
	client *core.Client
}

// GetProfile returns the profile of the logged in user.
func (s *Student) GetProfile(ctx context.Context) (*Profile, error) {
	return call[Profile](ctx, s.client, "student.profile.get", nil)
}

// GetStatuses returns the statuses of the user indexed by problem.
func (s *Student) GetStatuses(ctx context.Context) (map[string]AbstractStatus, error) {
	m, err := call[map[string]AbstractStatus](ctx, s.client, "student.statuses.getAll", nil)
	if err != nil {
		return nil, err
	}
	return *m, nil
}

// GetStatus returns the status of the user on one abstract problem, e.g. "P68688".
func (s *Student) GetStatus(ctx context.Context, problemNm string) (*AbstractStatus, error) {
	return call[AbstractStatus](ctx, s.client, "student.statuses.getForAbstractProblem", problemNm)
}
