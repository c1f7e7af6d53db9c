package tool

import (
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/toolrent/internal/inventory"
)

type categoryResponse struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

type GroupResponse struct {
	ID               uuid.UUID        `json:"id"`
	Name             string           `json:"name"`
	Category         categoryResponse `json:"category"`
	TotalTools       int              `json:"total_tools"`
	CurrentStock     int              `json:"current_stock"`
	ReplacementValue *int64           `json:"replacement_value"`
	DailyRentalRate  *int64           `json:"daily_rental_rate"`
	CreatedAt        time.Time        `json:"created_at"`
	UpdatedAt        *time.Time       `json:"updated_at,omitempty"`
}

type toolResponse struct {
	ID        uuid.UUID            `json:"id"`
	GroupID   uuid.UUID            `json:"tool_group_id"`
	Name      string               `json:"name"`
	Category  categoryResponse     `json:"category"`
	Status    inventory.ToolStatus `json:"status"`
	CreatedAt time.Time            `json:"created_at"`
	UpdatedAt *time.Time           `json:"updated_at,omitempty"`
}

func toGroupResponse(g *inventory.Group) GroupResponse {
	return GroupResponse{
		ID:               g.ID,
		Name:             g.Name,
		Category:         categoryResponse{ID: g.Category.ID, Name: g.Category.Name},
		TotalTools:       g.TotalTools,
		CurrentStock:     g.CurrentStock,
		ReplacementValue: g.ReplacementValue,
		DailyRentalRate:  g.DailyRentalRate,
		CreatedAt:        g.CreatedAt,
		UpdatedAt:        g.UpdatedAt,
	}
}

// ToGroupResponseList is shared with the import endpoint, which answers with
// the groups it touched.
func ToGroupResponseList(groups []*inventory.Group) []GroupResponse {
	resp := make([]GroupResponse, len(groups))
	for i, g := range groups {
		resp[i] = toGroupResponse(g)
	}

	return resp
}

func toToolResponse(t *inventory.Tool) toolResponse {
	return toolResponse{
		ID:        t.ID,
		GroupID:   t.GroupID,
		Name:      t.Name,
		Category:  categoryResponse{ID: t.Category.ID, Name: t.Category.Name},
		Status:    t.Status,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}
