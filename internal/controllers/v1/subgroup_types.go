package v1

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/hogar-budget/backend/internal/models"
	"gorm.io/gorm"
)

// SubgroupEditable represents all user configurable parameters. On
// PATCH, CategoryIDs are added to the subgroup instead of replacing
// its members.
type SubgroupEditable struct {
	Name        string      `json:"name" example:"Servicios" default:""`                        // Name of the subgroup, unique per simulation regardless of case
	Note        string      `json:"note" example:"Luz, agua y gas juntos" default:""`           // Notes about the subgroup
	CategoryIDs []uuid.UUID `json:"categoryIds" example:"52d967d3-33f4-4b04-9ba7-772e5ab9d0ce"` // Member categories
}

func (editable SubgroupEditable) model() models.Subgroup {
	return models.Subgroup{
		Name: editable.Name,
		Note: editable.Note,
	}
}

type SubgroupLinks struct {
	Self       string `json:"self" example:"https://example.com/api/v1/subgroups/3b1ea324-d438-4419-882a-2fc91d71772f"`         // The subgroup itself
	Simulation string `json:"simulation" example:"https://example.com/api/v1/simulations/d2525a4c-2982-4bc8-bcd4-e01aae7b1c0d"` // The simulation of this subgroup
}

type Subgroup struct {
	models.DefaultModel
	SubgroupEditable
	SimulationID uuid.UUID     `json:"simulationId" example:"d2525a4c-2982-4bc8-bcd4-e01aae7b1c0d"` // ID of the simulation
	Links        SubgroupLinks `json:"links"`
}

func newSubgroup(c *gin.Context, db *gorm.DB, model models.Subgroup) (Subgroup, error) {
	url := c.GetString(string(models.DBContextURL))

	members, err := model.Members(db)
	if err != nil {
		return Subgroup{}, err
	}

	categoryIDs := make([]uuid.UUID, 0, len(members))
	for _, member := range members {
		categoryIDs = append(categoryIDs, member.CategoryID)
	}

	return Subgroup{
		DefaultModel: model.DefaultModel,
		SubgroupEditable: SubgroupEditable{
			Name:        model.Name,
			Note:        model.Note,
			CategoryIDs: categoryIDs,
		},
		SimulationID: model.SimulationID,
		Links: SubgroupLinks{
			Self:       fmt.Sprintf("%s/v1/subgroups/%s", url, model.ID),
			Simulation: fmt.Sprintf("%s/v1/simulations/%s", url, model.SimulationID),
		},
	}, nil
}

type SubgroupListResponse struct {
	Data  []Subgroup `json:"data"`                                                          // List of Subgroups
	Error *string    `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type SubgroupResponse struct {
	Data  *Subgroup `json:"data"`                                                          // Data for the Subgroup
	Error *string   `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}
