package domain

import (
	"time"

	"github.com/google/uuid"
)

// BoardID is a value object for board identity.
type BoardID struct{ uuid.UUID }

// NewBoardID creates a new BoardID from uuid.
func NewBoardID(id uuid.UUID) BoardID { return BoardID{UUID: id} }

// String returns the canonical string form.
func (b BoardID) String() string { return b.UUID.String() }

// ListID is a value object for list identity.
type ListID struct{ uuid.UUID }

// NewListID creates a new ListID from uuid.
func NewListID(id uuid.UUID) ListID { return ListID{UUID: id} }

// String returns the canonical string form.
func (l ListID) String() string { return l.UUID.String() }

// Board belongs to a project and holds an ordered sequence of lists.
// Every project has exactly one default board created with it.
type Board struct {
	ID        BoardID
	ProjectID ProjectID
	Name      string
	IsDefault bool
	Position  int
	CreatedAt time.Time
	UpdatedAt time.Time
	// Lists is populated by queries that load the board tree, position ascending.
	Lists []*List
}

// List belongs to a board and carries an integer position among its siblings.
type List struct {
	ID        ListID
	BoardID   BoardID
	Name      string
	Position  int
	CreatedAt time.Time
	UpdatedAt time.Time
	// Tasks is populated by queries that load the board tree, position ascending.
	Tasks []*Task
}

// DefaultBoardName is the name of the board created with each project.
const DefaultBoardName = "Main Board"

// DefaultListNames are the lists seeded on the default board, in position order.
var DefaultListNames = []string{"To Do", "In Progress", "Done"}
