package dto

import "github.com/keith666666666/APEER/internal/models"

// CriterionResponse serializes one rubric criterion.
type CriterionResponse struct {
	ID       uint   `json:"id"`
	Name     string `json:"name"`
	Weight   int    `json:"weight"`
	MaxScore int    `json:"max_score"`
}

// RubricResponse serializes a rubric with its ordered criteria.
type RubricResponse struct {
	ID       uint                `json:"id"`
	Name     string              `json:"name"`
	Criteria []CriterionResponse `json:"criteria"`
}

// NewRubricResponse converts a rubric model into a DTO.
func NewRubricResponse(model models.Rubric) RubricResponse {
	criteria := make([]CriterionResponse, 0, len(model.Criteria))
	for _, criterion := range model.Criteria {
		criteria = append(criteria, CriterionResponse{
			ID:       criterion.ID,
			Name:     criterion.Name,
			Weight:   criterion.Weight,
			MaxScore: criterion.MaxScore,
		})
	}

	return RubricResponse{ID: model.ID, Name: model.Name, Criteria: criteria}
}

// NewRubricResponseSlice converts rubric models into DTOs.
func NewRubricResponseSlice(rubrics []models.Rubric) []RubricResponse {
	responses := make([]RubricResponse, 0, len(rubrics))
	for _, rubric := range rubrics {
		responses = append(responses, NewRubricResponse(rubric))
	}

	return responses
}
