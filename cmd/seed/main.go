package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/seokkiyoon07-sys/omrsheet/internal/config"
	"github.com/seokkiyoon07-sys/omrsheet/internal/model"
	"github.com/seokkiyoon07-sys/omrsheet/internal/repository"
)

func main() {
	cfg := config.Load()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer client.Disconnect(ctx)

	repo := repository.NewTemplateRepo(client.Database(cfg.DatabaseName))

	for name, layout := range starterTemplates() {
		layout.Blocks = model.NormalizeBlocks(layout.Blocks)
		model.Renumber(layout.Blocks)
		if err := repo.Upsert(ctx, name, layout); err != nil {
			log.Fatalf("Failed to seed template %s: %v", name, err)
		}
		fmt.Printf("Seeded template: %s (%d blocks)\n", name, len(layout.Blocks))
	}
}

// starterTemplates builds the default answer-sheet layouts: a standard
// 20-question sheet and a 45-question mock-exam sheet. Coordinates are
// for a 300 DPI A4 scan.
func starterTemplates() map[string]*model.Layout {
	return map[string]*model.Layout{
		"standard_20.json": {
			DPI:    model.DefaultDPI,
			Canvas: &model.Canvas{Width: 2480, Height: 3508},
			Blocks: []model.Block{
				{
					Type: model.BlockTypeName,
					Quad: []model.Point{{180, 260}, {760, 260}, {760, 1180}, {180, 1180}},
					Rows: 21, Cols: 12,
				},
				{
					Type: model.BlockTypeID,
					Quad: []model.Point{{860, 260}, {1420, 260}, {1420, 1180}, {860, 1180}},
					Rows: 10, Cols: 8,
				},
				{
					Type:          model.BlockTypeGrid,
					Quad:          []model.Point{{180, 1320}, {1180, 1320}, {1180, 2280}, {180, 2280}},
					Rows:          10, Cols: 5,
					QuestionStart: 1, QuestionCount: 10,
				},
				{
					Type:          model.BlockTypeGrid,
					Quad:          []model.Point{{1320, 1320}, {2320, 1320}, {2320, 2280}, {1320, 2280}},
					Rows:          10, Cols: 5,
					QuestionStart: 11, QuestionCount: 10,
				},
			},
		},
		"mock_exam_45.json": {
			DPI:    model.DefaultDPI,
			Canvas: &model.Canvas{Width: 2480, Height: 3508},
			Blocks: []model.Block{
				{
					Type: model.BlockTypeName,
					Quad: []model.Point{{160, 220}, {700, 220}, {700, 1100}, {160, 1100}},
					Rows: 21, Cols: 12,
				},
				{
					Type: model.BlockTypeCode,
					Quad: []model.Point{{800, 220}, {980, 220}, {980, 560}, {800, 560}},
					Rows: 3, Cols: 1,
				},
				{
					Type: model.BlockTypePhone,
					Quad: []model.Point{{1080, 220}, {1700, 220}, {1700, 1100}, {1080, 1100}},
					Rows: 10, Cols: 9,
				},
				{
					Type:          model.BlockTypeGrid,
					Quad:          []model.Point{{160, 1240}, {880, 1240}, {880, 2680}, {160, 2680}},
					Rows:          15, Cols: 5,
					QuestionStart: 1, QuestionCount: 15,
				},
				{
					Type:          model.BlockTypeGrid,
					Quad:          []model.Point{{980, 1240}, {1700, 1240}, {1700, 2680}, {980, 2680}},
					Rows:          15, Cols: 5,
					QuestionStart: 16, QuestionCount: 15,
				},
				{
					Type:          model.BlockTypeGrid,
					Quad:          []model.Point{{1800, 1240}, {2320, 1240}, {2320, 2680}, {1800, 2680}},
					Rows:          15, Cols: 5,
					QuestionStart: 31, QuestionCount: 15,
				},
			},
		},
	}
}
