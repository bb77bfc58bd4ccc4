package databases_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/intelfusion/case-similarity-api/databases"
	"github.com/intelfusion/case-similarity-api/databases/mocks"
	"github.com/intelfusion/case-similarity-api/models"
)

func TestSettingsFindOne(t *testing.T) {
	dbHelper := &mocks.DatabaseHelper{}
	collectionHelper := &mocks.CollectionHelper{}
	srHelper := &mocks.SingleResultHelper{}

	srHelper.On("Decode", mock.Anything).Return(nil).Run(func(args mock.Arguments) {
		arg := args.Get(0).(**models.ReportTypeSettings)
		(*arg).ReportType = "theft"
		(*arg).ScoreThreshold = 0.9
		(*arg).Limit = 3
		(*arg).RadiusCoordinate = 500
	})
	collectionHelper.On("FindOne", mock.Anything, bson.M{"_id": "theft"}).Return(srHelper)
	dbHelper.On("Collection", "report_type_settings").Return(collectionHelper)

	sdb := databases.NewSettingsDatabase(dbHelper)
	settings, err := sdb.FindOne(context.Background(), "theft")
	require.NoError(t, err)
	assert.Equal(t, "theft", settings.ReportType)
	assert.Equal(t, 0.9, settings.ScoreThreshold)
	assert.Equal(t, 3, settings.Limit)
	assert.Equal(t, 500.0, settings.RadiusCoordinate)
}

func TestSettingsFindOneError(t *testing.T) {
	dbHelper := &mocks.DatabaseHelper{}
	collectionHelper := &mocks.CollectionHelper{}
	srHelper := &mocks.SingleResultHelper{}

	srHelper.On("Decode", mock.Anything).Return(errors.New("mongo error"))
	collectionHelper.On("FindOne", mock.Anything, mock.Anything).Return(srHelper)
	dbHelper.On("Collection", "report_type_settings").Return(collectionHelper)

	sdb := databases.NewSettingsDatabase(dbHelper)
	settings, err := sdb.FindOne(context.Background(), "theft")
	require.Error(t, err)
	assert.Nil(t, settings)
}

func TestSettingsUpsert(t *testing.T) {
	dbHelper := &mocks.DatabaseHelper{}
	collectionHelper := &mocks.CollectionHelper{}

	collectionHelper.On("UpdateOne", mock.Anything,
		bson.M{"_id": "theft"},
		bson.M{"$set": bson.M{
			"scoreThreshold":   0.9,
			"limit":            3,
			"radiusCoordinate": 500.0,
		}},
		mock.Anything,
	).Return(nil, nil)
	dbHelper.On("Collection", "report_type_settings").Return(collectionHelper)

	sdb := databases.NewSettingsDatabase(dbHelper)
	err := sdb.Upsert(context.Background(), models.ReportTypeSettings{
		ReportType:       "theft",
		ScoreThreshold:   0.9,
		Limit:            3,
		RadiusCoordinate: 500,
	})
	require.NoError(t, err)
	collectionHelper.AssertExpectations(t)
}

func TestSettingsDeleteOne(t *testing.T) {
	dbHelper := &mocks.DatabaseHelper{}
	collectionHelper := &mocks.CollectionHelper{}

	collectionHelper.On("DeleteOne", mock.Anything, bson.M{"_id": "theft"}).Return(nil, nil)
	dbHelper.On("Collection", "report_type_settings").Return(collectionHelper)

	sdb := databases.NewSettingsDatabase(dbHelper)
	require.NoError(t, sdb.DeleteOne(context.Background(), "theft"))
	collectionHelper.AssertExpectations(t)
}
