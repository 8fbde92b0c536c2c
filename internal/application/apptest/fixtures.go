package apptest

import (
	"time"

	"github.com/google/uuid"

	"github.com/tablero-app/tablero/internal/domain"
)

// SeedUser adds a user to the store.
func SeedUser(s *Store, email string) *domain.User {
	u := &domain.User{
		ID:        domain.NewUserID(uuid.New()),
		Email:     email,
		FirstName: "Test",
		LastName:  "User",
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	s.Users[u.ID] = u
	return u
}

// SeedProject adds a project with the owner's membership, the default board
// and its three seeded lists. Returns the project and the board.
func SeedProject(s *Store, owner *domain.User, key string) (*domain.Project, *domain.Board) {
	now := time.Now()
	p := &domain.Project{
		ID:          domain.NewProjectID(uuid.New()),
		Name:        "Project " + key,
		Key:         key,
		Status:      domain.ProjectActive,
		CreatedByID: owner.ID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	s.Projects[p.ID] = p
	m := &domain.Membership{
		ID:        domain.NewMembershipID(uuid.New()),
		ProjectID: p.ID,
		UserID:    owner.ID,
		Role:      domain.RoleOwner,
		CreatedAt: now,
	}
	s.Memberships[m.ID] = m
	b := &domain.Board{
		ID:        domain.NewBoardID(uuid.New()),
		ProjectID: p.ID,
		Name:      domain.DefaultBoardName,
		IsDefault: true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.Boards[b.ID] = b
	for i, name := range domain.DefaultListNames {
		l := &domain.List{
			ID:        domain.NewListID(uuid.New()),
			BoardID:   b.ID,
			Name:      name,
			Position:  i,
			CreatedAt: now,
			UpdatedAt: now,
		}
		s.Lists[l.ID] = l
		b.Lists = append(b.Lists, l)
	}
	return p, b
}

// SeedMember adds a membership for the user in the project.
func SeedMember(s *Store, p *domain.Project, user *domain.User, role domain.Role) *domain.Membership {
	m := &domain.Membership{
		ID:        domain.NewMembershipID(uuid.New()),
		ProjectID: p.ID,
		UserID:    user.ID,
		Role:      role,
		CreatedAt: time.Now(),
	}
	s.Memberships[m.ID] = m
	return m
}

// SeedTask adds a task to the list.
func SeedTask(s *Store, p *domain.Project, list *domain.List, creator *domain.User, title string, position int) *domain.Task {
	now := time.Now()
	t := &domain.Task{
		ID:          domain.NewTaskID(uuid.New()),
		ListID:      list.ID,
		ProjectID:   p.ID,
		Title:       title,
		Position:    position,
		Priority:    domain.PriorityMedium,
		CreatedByID: creator.ID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	s.Tasks[t.ID] = t
	return t
}

// SeedLabel adds a label to the project.
func SeedLabel(s *Store, p *domain.Project, name, color string) *domain.Label {
	now := time.Now()
	lb := &domain.Label{
		ID:        domain.NewLabelID(uuid.New()),
		ProjectID: p.ID,
		Name:      name,
		Color:     color,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.Labels[lb.ID] = lb
	return lb
}
