package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/freelancehub/marketplace-api/internal/core/domain"
)

const collectionProjects = "projects"

// ProjectRepository implements ports.ProjectRepository on MongoDB.
type ProjectRepository struct {
	col *mongo.Collection
}

func NewProjectRepository(db *mongo.Database) *ProjectRepository {
	return &ProjectRepository{col: db.Collection(collectionProjects)}
}

type projectDoc struct {
	ID              string          `bson:"_id"`
	Title           string          `bson:"title"`
	Description     string          `bson:"description"`
	Deadline        domain.Deadline `bson:"deadline"`
	EstimatedBudget int64           `bson:"estimated_budget_cents"`
	Status          string          `bson:"status"`
	OwnerID         string          `bson:"owner_id"`
	CreatedAt       time.Time       `bson:"created_at"`
	UpdatedAt       time.Time       `bson:"updated_at"`
}

func toProjectDoc(p *domain.Project) projectDoc {
	return projectDoc{
		ID:              p.ID.String(),
		Title:           p.Title,
		Description:     p.Description,
		Deadline:        p.Deadline,
		EstimatedBudget: p.EstimatedBudget,
		Status:          string(p.Status),
		OwnerID:         p.OwnerID.String(),
		CreatedAt:       p.CreatedAt.UTC(),
		UpdatedAt:       p.UpdatedAt.UTC(),
	}
}

func (d projectDoc) toDomain() (*domain.Project, error) {
	id, err := uuid.Parse(d.ID)
	if err != nil {
		return nil, fmt.Errorf("parse project id %q: %w", d.ID, err)
	}
	ownerID, err := uuid.Parse(d.OwnerID)
	if err != nil {
		return nil, fmt.Errorf("parse project owner id %q: %w", d.OwnerID, err)
	}
	return &domain.Project{
		ID:              id,
		Title:           d.Title,
		Description:     d.Description,
		Deadline:        d.Deadline,
		EstimatedBudget: d.EstimatedBudget,
		Status:          domain.ProjectStatus(d.Status),
		OwnerID:         ownerID,
		CreatedAt:       d.CreatedAt,
		UpdatedAt:       d.UpdatedAt,
	}, nil
}

func (r *ProjectRepository) Create(ctx context.Context, project *domain.Project) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.InsertOne(ctx, toProjectDoc(project)); err != nil {
		return fmt.Errorf("insert project: %w", err)
	}
	return nil
}

func (r *ProjectRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Project, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc projectDoc
	if err := r.col.FindOne(ctx, bson.M{"_id": id.String()}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrProjectNotFound
		}
		return nil, fmt.Errorf("find project: %w", err)
	}
	return doc.toDomain()
}

// FindAll returns one page of projects, newest first, plus the total count.
func (r *ProjectRepository) FindAll(ctx context.Context, page, size int) ([]domain.Project, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	total, err := r.col.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, 0, fmt.Errorf("count projects: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64(page) * int64(size)).
		SetLimit(int64(size))

	cursor, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list projects: %w", err)
	}
	defer cursor.Close(ctx)

	projects := make([]domain.Project, 0, size)
	for cursor.Next(ctx) {
		var doc projectDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, 0, fmt.Errorf("decode project: %w", err)
		}
		project, err := doc.toDomain()
		if err != nil {
			return nil, 0, err
		}
		projects = append(projects, *project)
	}
	if err := cursor.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate projects: %w", err)
	}

	return projects, total, nil
}

func (r *ProjectRepository) Update(ctx context.Context, project *domain.Project) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": project.ID.String()}, toProjectDoc(project))
	if err != nil {
		return fmt.Errorf("update project: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrProjectNotFound
	}
	return nil
}

func (r *ProjectRepository) Delete(ctx context.Context, id uuid.UUID) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id.String()})
	if err != nil {
		return fmt.Errorf("delete project: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrProjectNotFound
	}
	return nil
}

// EnsureIndexes creates the owner lookup index.
func (r *ProjectRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "owner_id", Value: 1}}},
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
