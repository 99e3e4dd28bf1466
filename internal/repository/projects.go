package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/vanshika/aquafund/internal/domain"
	"github.com/vanshika/aquafund/internal/graph"
)

// ErrProjectNotFound is returned by Get for unknown project IDs.
var ErrProjectNotFound = errors.New("project not found")

// Projects persists the investment catalog as :Project nodes linked to
// :Category nodes.
type Projects struct {
	client graph.Client
}

// NewProjects instantiates a Projects repository backed by client.
func NewProjects(client graph.Client) *Projects {
	return &Projects{client: client}
}

const upsertProjectCypher = `
MERGE (p:Project {projectId: $projectId})
SET p += $props
WITH p
OPTIONAL MATCH (p)-[old:IN_CATEGORY]->(:Category)
DELETE old
WITH p
MERGE (c:Category {name: $category})
MERGE (p)-[:IN_CATEGORY]->(c)
`

const projectReturn = `
RETURN p.projectId AS projectId,
       p.name AS name,
       p.description AS description,
       p.riskLevel AS riskLevel,
       p.expectedRoi AS expectedRoi,
       p.fundingGoal AS fundingGoal,
       p.fundingRaised AS fundingRaised,
       p.duration AS duration,
       p.category AS category,
       p.impact AS impact,
       p.location AS location,
       p.imageUrl AS imageUrl
`

const listProjectsCypher = `
MATCH (p:Project)` + projectReturn + `ORDER BY p.projectId
`

const getProjectCypher = `
MATCH (p:Project {projectId: $projectId})` + projectReturn + `LIMIT 1
`

const countProjectsCypher = `
MATCH (p:Project)
RETURN count(p) AS total
`

// Upsert creates or refreshes a project node and its category edge.
func (r *Projects) Upsert(ctx context.Context, p domain.Project) error {
	if p.ID == "" {
		return errors.New("project id is required")
	}
	params := map[string]any{
		"projectId": p.ID,
		"category":  p.Category,
		"props":     projectProperties(p),
	}
	if _, err := r.client.ExecuteWrite(ctx, upsertProjectCypher, params); err != nil {
		return fmt.Errorf("upsert project %s: %w", p.ID, err)
	}
	return nil
}

// List returns every project ordered by ID.
func (r *Projects) List(ctx context.Context) ([]domain.Project, error) {
	res, err := r.client.ExecuteRead(ctx, listProjectsCypher, nil)
	if err != nil {
		return nil, fmt.Errorf("list projects query: %w", err)
	}
	projects := make([]domain.Project, 0, len(res.Records))
	for _, rec := range res.Records {
		p, err := recordToProject(rec)
		if err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	return projects, nil
}

// Get returns one project or ErrProjectNotFound.
func (r *Projects) Get(ctx context.Context, id string) (domain.Project, error) {
	res, err := r.client.ExecuteRead(ctx, getProjectCypher, map[string]any{"projectId": id})
	if err != nil {
		return domain.Project{}, fmt.Errorf("get project %s: %w", id, err)
	}
	if len(res.Records) == 0 {
		return domain.Project{}, fmt.Errorf("%w: %s", ErrProjectNotFound, id)
	}
	return recordToProject(res.Records[0])
}

// Count returns the number of project nodes.
func (r *Projects) Count(ctx context.Context) (int64, error) {
	res, err := r.client.ExecuteRead(ctx, countProjectsCypher, nil)
	if err != nil {
		return 0, fmt.Errorf("count projects query: %w", err)
	}
	if len(res.Records) == 0 {
		return 0, nil
	}
	switch v := res.Records[0]["total"].(type) {
	case int64:
		return v, nil
	case int:
		return int64(v), nil
	case float64:
		return int64(v), nil
	}
	return 0, nil
}

// Amounts are stored as decimal strings so values round-trip exactly.
func projectProperties(p domain.Project) map[string]any {
	return map[string]any{
		"name":          p.Name,
		"description":   p.Description,
		"riskLevel":     string(p.RiskLevel),
		"expectedRoi":   p.ExpectedROI.String(),
		"fundingGoal":   p.FundingGoal.String(),
		"fundingRaised": p.FundingRaised.String(),
		"duration":      p.Duration,
		"category":      p.Category,
		"impact":        p.Impact,
		"location":      p.Location,
		"imageUrl":      p.ImageURL,
	}
}

func recordToProject(rec graph.Record) (domain.Project, error) {
	id := toString(rec["projectId"])
	risk, err := domain.ParseRiskLevel(toString(rec["riskLevel"]))
	if err != nil {
		return domain.Project{}, fmt.Errorf("project %s: %w", id, err)
	}
	roi, err := toDecimal(rec["expectedRoi"])
	if err != nil {
		return domain.Project{}, fmt.Errorf("project %s expectedRoi: %w", id, err)
	}
	goal, err := toDecimal(rec["fundingGoal"])
	if err != nil {
		return domain.Project{}, fmt.Errorf("project %s fundingGoal: %w", id, err)
	}
	raised, err := toDecimal(rec["fundingRaised"])
	if err != nil {
		return domain.Project{}, fmt.Errorf("project %s fundingRaised: %w", id, err)
	}
	return domain.Project{
		ID:            id,
		Name:          toString(rec["name"]),
		Description:   toString(rec["description"]),
		RiskLevel:     risk,
		ExpectedROI:   roi,
		FundingGoal:   goal,
		FundingRaised: raised,
		Duration:      toString(rec["duration"]),
		Category:      toString(rec["category"]),
		Impact:        toString(rec["impact"]),
		Location:      toString(rec["location"]),
		ImageURL:      toString(rec["imageUrl"]),
	}, nil
}

func toString(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case nil:
		return ""
	default:
		return fmt.Sprint(val)
	}
}

func toDecimal(v any) (decimal.Decimal, error) {
	switch val := v.(type) {
	case nil:
		return decimal.Zero, nil
	case string:
		if val == "" {
			return decimal.Zero, nil
		}
		return decimal.NewFromString(val)
	case float64:
		return decimal.NewFromFloat(val), nil
	case int64:
		return decimal.NewFromInt(val), nil
	case int:
		return decimal.NewFromInt(int64(val)), nil
	}
	return decimal.Zero, fmt.Errorf("unsupported numeric value %T", v)
}
