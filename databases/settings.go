package databases

// go generate: mockery --name SettingsDatabase

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/intelfusion/case-similarity-api/models"
)

const settingsName = "report_type_settings"

// SettingsDatabase contains the methods to use with the report-type settings database
type SettingsDatabase interface {
	FindOne(ctx context.Context, reportType string) (*models.ReportTypeSettings, error)
	Upsert(ctx context.Context, settings models.ReportTypeSettings) error
	DeleteOne(ctx context.Context, reportType string) error
}

type settingsDatabase struct {
	db DatabaseHelper
}

// NewSettingsDatabase initializes a new instance of settings database with the provided db connection
func NewSettingsDatabase(db DatabaseHelper) SettingsDatabase {
	return &settingsDatabase{
		db: db,
	}
}

func (c *settingsDatabase) FindOne(ctx context.Context, reportType string) (*models.ReportTypeSettings, error) {
	settings := &models.ReportTypeSettings{}
	err := c.db.Collection(settingsName).FindOne(ctx, bson.M{"_id": reportType}).Decode(&settings)
	if err != nil {
		return nil, err
	}
	return settings, nil
}

func (c *settingsDatabase) Upsert(ctx context.Context, settings models.ReportTypeSettings) error {
	upsert := true
	_, err := c.db.Collection(settingsName).UpdateOne(ctx,
		bson.M{"_id": settings.ReportType},
		bson.M{"$set": bson.M{
			"scoreThreshold":   settings.ScoreThreshold,
			"limit":            settings.Limit,
			"radiusCoordinate": settings.RadiusCoordinate,
		}},
		&options.UpdateOptions{Upsert: &upsert},
	)
	return err
}

func (c *settingsDatabase) DeleteOne(ctx context.Context, reportType string) error {
	_, err := c.db.Collection(settingsName).DeleteOne(ctx, bson.M{"_id": reportType})
	return err
}
