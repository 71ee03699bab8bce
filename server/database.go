package main

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/ifo/sanic"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"moul.io/zapgorm2"

	"github.com/buchanae/gobblet"
)

// getDB opens the database named by DATABASE_URL (postgres) or DB_PATH
// (sqlite, default gobblet.db) and migrates the schema.
func getDB() (*gorm.DB, error) {
	gl := zapgorm2.New(log.Desugar())
	config := &gorm.Config{
		Logger: gl.LogMode(logger.Warn),
	}

	var db *gorm.DB
	var err error
	if dbURL := os.Getenv("DATABASE_URL"); dbURL != "" {
		db, err = gorm.Open(postgres.Open(dbURL), config)
	} else {
		path := os.Getenv("DB_PATH")
		if path == "" {
			path = "gobblet.db"
		}
		db, err = gorm.Open(sqlite.Open(path), config)
	}
	if err != nil {
		return nil, err
	}

	if err := AutoMigrate(db); err != nil {
		return nil, fmt.Errorf("failed to run auto-migration: %v", err)
	}

	return db, nil
}

// AutoMigrate creates or updates the schema.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&User{}, &Game{}, &Move{})
}

func createGame(db *gorm.DB, size, stacks int, sizeNames []string) (string, error) {
	if size < 3 {
		size = gobblet.DefaultBoardSize
	}
	if stacks < 1 {
		stacks = gobblet.DefaultNumStacks
	}
	if len(sizeNames) == 0 {
		sizeNames = gobblet.DefaultSizeNames
	}

	// Game Slug
	worker := sanic.NewWorker7()
	id := worker.NextID()
	slug := worker.IDString(id)

	game := Game{
		Slug:      slug,
		Size:      size,
		Stacks:    stacks,
		SizeNames: strings.Join(sizeNames, ","),
	}

	if err := db.Create(&game).Error; err != nil {
		return "", err
	}

	return slug, nil
}

func insertMove(db *gorm.DB, gameID int64, seat int, text string, number int64) error {
	move := Move{
		GameID: gameID,
		Seat:   seat,
		Number: number,
		Text:   text,
	}

	return db.Create(&move).Error
}

func getGameRecord(db *gorm.DB, slug string) (*Game, error) {
	var game Game
	err := db.Where("slug = ?", slug).
		Preload("Moves", func(db *gorm.DB) *gorm.DB {
			return db.Order("number, created_at")
		}).
		First(&game).Error
	if err != nil {
		return nil, err
	}
	return &game, nil
}

// loadGame fetches a stored game and replays its moves through the rules
// engine. A stored move that no longer validates is a storage corruption
// and surfaces as an error.
func loadGame(db *gorm.DB, slug string) (*Game, *gobblet.Game, error) {
	rec, err := getGameRecord(db, slug)
	if err != nil {
		return nil, nil, err
	}

	g, err := gobblet.NewGame(rec.Size, strings.Split(rec.SizeNames, ","), rec.Stacks,
		"Player 1", "Player 2")
	if err != nil {
		return nil, nil, err
	}

	for _, m := range rec.Moves {
		mv, err := gobblet.NewMove(m.Text)
		if err != nil {
			return nil, nil, fmt.Errorf("stored move %q: %w", m.Text, err)
		}
		if m.Seat < 1 || m.Seat > len(g.Players) {
			return nil, nil, fmt.Errorf("stored move %q: bad seat %d", m.Text, m.Seat)
		}
		if err := g.Apply(g.Players[m.Seat-1], mv); err != nil {
			return nil, nil, fmt.Errorf("stored move %q: %w", m.Text, err)
		}
	}

	return rec, g, nil
}

func updateGameStatus(db *gorm.DB, slug, status string, winner int) error {
	return db.Model(&Game{}).Where("slug = ?", slug).
		Updates(map[string]interface{}{"status": status, "winner": winner}).Error
}

// One full move (load, validate, commit, persist) is the critical section
// per shared game; concurrent players must not interleave it.
var gameLocks sync.Map

func lockGame(slug string) *sync.Mutex {
	m, _ := gameLocks.LoadOrStore(slug, &sync.Mutex{})
	return m.(*sync.Mutex)
}
