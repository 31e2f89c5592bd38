package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Werneck0live/painel-contabil/internal/models"
)

var (
	ErrDuplicateTaxID = errors.New("tax id already exists")
	ErrNotFound       = errors.New("company not found")
)

const (
	collectionName = "companies"
	taxIDIndexName = "uniq_tax_id"
)

type CompanyRepository struct {
	coll *mongo.Collection
}

func NewCompanyRepository(db *mongo.Database) *CompanyRepository {
	return &CompanyRepository{coll: db.Collection(collectionName)}
}

// EnsureIndexes cria o índice único parcial de tax_id (CNPJ vazio pode repetir)
// e o índice de ordenação por created_at.
func (r *CompanyRepository) EnsureIndexes(ctx context.Context) error {
	taxID := mongo.IndexModel{
		Keys: bson.D{{Key: "tax_id", Value: 1}},
		Options: options.Index().
			SetUnique(true).
			SetName(taxIDIndexName).
			SetPartialFilterExpression(bson.M{"tax_id": bson.M{"$gt": ""}}),
	}
	_, err := r.coll.Indexes().CreateOne(ctx, taxID)
	if err != nil {
		// Se já existir com outra opção, tenta dropar e recriar
		var ce mongo.CommandError
		if !errors.As(err, &ce) || (ce.Code != 85 && ce.Code != 86) { // IndexOptionsConflict / IndexKeySpecsConflict
			return fmt.Errorf("create index %s: %w", taxIDIndexName, err)
		}
		if _, dropErr := r.coll.Indexes().DropOne(ctx, taxIDIndexName); dropErr != nil {
			return fmt.Errorf("drop index %s: %w", taxIDIndexName, dropErr)
		}
		if _, err := r.coll.Indexes().CreateOne(ctx, taxID); err != nil {
			return fmt.Errorf("recreate index %s: %w", taxIDIndexName, err)
		}
	}

	_, err = r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "created_at", Value: -1}},
		Options: options.Index().SetName("created_at_desc"),
	})
	if err != nil {
		return fmt.Errorf("create index created_at_desc: %w", err)
	}
	return nil
}

func (r *CompanyRepository) Create(ctx context.Context, c *models.Company) (string, error) {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if c.CollaboratorIDs == nil {
		c.CollaboratorIDs = []string{}
	}
	c.CreatedAt = time.Now().UTC()
	c.UpdatedAt = c.CreatedAt
	if _, err := r.coll.InsertOne(ctx, c); err != nil {
		if isDuplicateKey(err) {
			return "", ErrDuplicateTaxID
		}
		return "", err
	}
	return c.ID, nil
}

func (r *CompanyRepository) GetByID(ctx context.Context, id string) (*models.Company, error) {
	var c models.Company
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&c)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Find lista com filtros, mais recentes primeiro.
func (r *CompanyRepository) Find(ctx context.Context, f models.CompanyFilter, limit int64, skip int64) ([]models.Company, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	if limit > 0 {
		opts.SetLimit(limit)
	}
	if skip > 0 {
		opts.SetSkip(skip)
	}
	return r.find(ctx, BuildFilter(f), opts)
}

// All devolve todas as empresas em ordem de criação (snapshot da importação e relatórios).
func (r *CompanyRepository) All(ctx context.Context) ([]models.Company, error) {
	return r.find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}}))
}

func (r *CompanyRepository) Count(ctx context.Context, f models.CompanyFilter) (int64, error) {
	return r.coll.CountDocuments(ctx, BuildFilter(f))
}

func (r *CompanyRepository) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]models.Company, error) {
	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	list := []models.Company{}
	for cur.Next(ctx) {
		var c models.Company
		if err := cur.Decode(&c); err != nil {
			return nil, err
		}
		list = append(list, c)
	}
	return list, cur.Err()
}

// Update aplica só os campos presentes no patch.
func (r *CompanyRepository) Update(ctx context.Context, id string, p *models.CompanyPatch) error {
	set := p.Fields()
	set["updated_at"] = time.Now().UTC()

	res, err := r.coll.UpdateByID(ctx, id, bson.M{"$set": set})
	if err != nil {
		if isDuplicateKey(err) {
			return ErrDuplicateTaxID
		}
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Replace troca o documento inteiro (PUT). created_at deve vir preenchido pelo chamador.
func (r *CompanyRepository) Replace(ctx context.Context, id string, c *models.Company) error {
	c.ID = id
	c.UpdatedAt = time.Now().UTC()
	if c.CollaboratorIDs == nil {
		c.CollaboratorIDs = []string{}
	}
	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": id}, c)
	if err != nil {
		if isDuplicateKey(err) {
			return ErrDuplicateTaxID
		}
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *CompanyRepository) Delete(ctx context.Context, id string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func isDuplicateKey(err error) bool {
	var we mongo.WriteException
	if errors.As(err, &we) {
		for _, e := range we.WriteErrors {
			if e.Code == 11000 {
				return true
			}
		}
	}
	return mongo.IsDuplicateKeyError(err)
}
