package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/johnstonks-git/klimata/internal/core/domain"
)

const datasetCollection = "barangays"

// BarangayRepository serves the read-only barangay metrics dataset from a
// MongoDB collection. The ETL that populates the collection is external.
type BarangayRepository struct {
	coll *mongo.Collection
}

func NewBarangayRepository(db *mongo.Database) *BarangayRepository {
	return &BarangayRepository{coll: db.Collection(datasetCollection)}
}

type barangayDoc struct {
	Name            string   `bson:"name"`
	PSGCode         string   `bson:"psg_code,omitempty"`
	UrbanRisk       *float64 `bson:"urban_risk_index"`
	Population      float64  `bson:"population"`
	AmenityIndex    float64  `bson:"amenity_index"`
	ClimateExposure float64  `bson:"climate_exposure_score"`
	RiskLabel       string   `bson:"risk_label,omitempty"`
	Geometry        string   `bson:"geometry,omitempty"`
}

// All returns every usable record. Documents missing the name key or the
// urban risk metric are skipped, matching how the source dataset drops
// incomplete rows.
func (r *BarangayRepository) All(ctx context.Context) ([]domain.BarangayRecord, error) {
	cursor, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("find barangays: %w", err)
	}
	defer cursor.Close(ctx)

	var records []domain.BarangayRecord
	for cursor.Next(ctx) {
		var doc barangayDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode barangay: %w", err)
		}
		if doc.Name == "" || doc.UrbanRisk == nil {
			continue
		}
		records = append(records, toRecord(doc))
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("iterate barangays: %w", err)
	}
	return records, nil
}

// FindByName returns the record for one barangay or domain.ErrNotFound.
func (r *BarangayRepository) FindByName(ctx context.Context, name string) (*domain.BarangayRecord, error) {
	var doc barangayDoc
	if err := r.coll.FindOne(ctx, bson.M{"name": name}).Decode(&doc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("find barangay: %w", err)
	}
	if doc.Name == "" || doc.UrbanRisk == nil {
		return nil, domain.ErrNotFound
	}
	record := toRecord(doc)
	return &record, nil
}

func toRecord(doc barangayDoc) domain.BarangayRecord {
	return domain.BarangayRecord{
		Name:            doc.Name,
		PSGCode:         doc.PSGCode,
		UrbanRisk:       *doc.UrbanRisk,
		Population:      doc.Population,
		AmenityIndex:    doc.AmenityIndex,
		ClimateExposure: doc.ClimateExposure,
		RiskLabel:       doc.RiskLabel,
		Geometry:        doc.Geometry,
	}
}
