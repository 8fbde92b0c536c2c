// Package labels manages label definitions and task-label links.
package labels

import (
	"context"
	"regexp"
	"time"

	"github.com/google/uuid"

	"github.com/tablero-app/tablero/internal/application/authz"
	"github.com/tablero-app/tablero/internal/application/ports"
	"github.com/tablero-app/tablero/internal/domain"
	domerrors "github.com/tablero-app/tablero/internal/domain/errors"
)

// colorRegex accepts 3- or 6-digit hex colors, e.g. #3b82f6.
var colorRegex = regexp.MustCompile(`^#([A-Fa-f0-9]{6}|[A-Fa-f0-9]{3})$`)

// CreateLabelInput carries the new label's attributes.
type CreateLabelInput struct {
	ProjectID domain.ProjectID
	Name      string
	Color     string
}

// CreateLabel creates a label. Requires OWNER or ADMIN; label names are unique
// per project and a project holds at most domain.MaxProjectLabels labels.
type CreateLabel struct {
	authority *authz.Authority
	labels    ports.LabelRepository
}

// NewCreateLabel builds the use case.
func NewCreateLabel(authority *authz.Authority, labels ports.LabelRepository) *CreateLabel {
	return &CreateLabel{authority: authority, labels: labels}
}

// Execute creates the label.
func (uc *CreateLabel) Execute(ctx context.Context, caller authz.Principal, input CreateLabelInput) (*domain.Label, error) {
	if _, err := uc.authority.RequireMembershipWithRank(ctx, input.ProjectID, caller.ID, domain.RoleOwner, domain.RoleAdmin); err != nil {
		return nil, err
	}
	if !colorRegex.MatchString(input.Color) {
		return nil, domerrors.InvalidRequest("color must be a 3- or 6-digit hex code")
	}
	existing, err := uc.labels.GetByName(ctx, input.ProjectID, input.Name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domerrors.Conflict("a label with this name already exists in this project")
	}
	count, err := uc.labels.Count(ctx, input.ProjectID)
	if err != nil {
		return nil, err
	}
	if count >= domain.MaxProjectLabels {
		return nil, domerrors.Conflict("project label limit reached")
	}
	now := time.Now()
	label := &domain.Label{
		ID:        domain.NewLabelID(uuid.New()),
		ProjectID: input.ProjectID,
		Name:      input.Name,
		Color:     input.Color,
		CreatedAt: now,
		UpdatedAt: now,
	}
	// The unique (project, name) constraint converts a racing insert into the
	// same Conflict the pre-check would have raised.
	if err := uc.labels.Create(ctx, label); err != nil {
		return nil, err
	}
	return label, nil
}

// UpdateLabelInput is a field patch; nil fields are left unchanged.
type UpdateLabelInput struct {
	Name  *string
	Color *string
}

// UpdateLabel patches a label. Requires OWNER or ADMIN of the label's project.
type UpdateLabel struct {
	authority *authz.Authority
	labels    ports.LabelRepository
}

// NewUpdateLabel builds the use case.
func NewUpdateLabel(authority *authz.Authority, labels ports.LabelRepository) *UpdateLabel {
	return &UpdateLabel{authority: authority, labels: labels}
}

// Execute applies the patch and returns the updated label.
func (uc *UpdateLabel) Execute(ctx context.Context, caller authz.Principal, labelID domain.LabelID, input UpdateLabelInput) (*domain.Label, error) {
	label, err := uc.labels.GetByID(ctx, labelID)
	if err != nil {
		return nil, err
	}
	if label == nil {
		return nil, domerrors.NotFound("label not found")
	}
	if _, err := uc.authority.RequireMembershipWithRank(ctx, label.ProjectID, caller.ID, domain.RoleOwner, domain.RoleAdmin); err != nil {
		return nil, err
	}
	if input.Color != nil && !colorRegex.MatchString(*input.Color) {
		return nil, domerrors.InvalidRequest("color must be a 3- or 6-digit hex code")
	}
	if input.Name != nil && *input.Name != label.Name {
		existing, err := uc.labels.GetByName(ctx, label.ProjectID, *input.Name)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, domerrors.Conflict("a label with this name already exists in this project")
		}
		label.Name = *input.Name
	}
	if input.Color != nil {
		label.Color = *input.Color
	}
	label.UpdatedAt = time.Now()
	if err := uc.labels.Update(ctx, label); err != nil {
		return nil, err
	}
	return label, nil
}

// DeleteLabel deletes a label and its task links by cascade. Requires OWNER or ADMIN.
type DeleteLabel struct {
	authority *authz.Authority
	labels    ports.LabelRepository
}

// NewDeleteLabel builds the use case.
func NewDeleteLabel(authority *authz.Authority, labels ports.LabelRepository) *DeleteLabel {
	return &DeleteLabel{authority: authority, labels: labels}
}

// Execute deletes the label.
func (uc *DeleteLabel) Execute(ctx context.Context, caller authz.Principal, labelID domain.LabelID) error {
	label, err := uc.labels.GetByID(ctx, labelID)
	if err != nil {
		return err
	}
	if label == nil {
		return domerrors.NotFound("label not found")
	}
	if _, err := uc.authority.RequireMembershipWithRank(ctx, label.ProjectID, caller.ID, domain.RoleOwner, domain.RoleAdmin); err != nil {
		return err
	}
	return uc.labels.Delete(ctx, labelID)
}

// ListLabels returns a project's labels. The caller must be a member.
type ListLabels struct {
	authority *authz.Authority
	labels    ports.LabelRepository
}

// NewListLabels builds the use case.
func NewListLabels(authority *authz.Authority, labels ports.LabelRepository) *ListLabels {
	return &ListLabels{authority: authority, labels: labels}
}

// Execute lists the project's labels ordered by name.
func (uc *ListLabels) Execute(ctx context.Context, caller authz.Principal, projectID domain.ProjectID) ([]*domain.Label, error) {
	if _, err := uc.authority.RequireMembership(ctx, projectID, caller.ID); err != nil {
		return nil, err
	}
	return uc.labels.ListByProject(ctx, projectID)
}
