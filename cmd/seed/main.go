package main

import (
	"log"
	"os"
	"time"

	"iomd-notebook-be/internal/model"
	"iomd-notebook-be/pkg/database"
	"iomd-notebook-be/pkg/names"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

const seedIomd = `%% md
# Seeded notebook

%% js
var data = [1, 2, 3].map(x => x * 2)
`

// Development seeder: one user with a notebook, a draft revision,
// an uploaded file and a daily file source.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	color.Cyan("Seeding development data...")

	user := model.User{
		Id:       uuid.New(),
		Username: "dev",
		FullName: "Dev User",
	}
	if err := db.FirstOrCreate(&user, model.User{Username: "dev"}).Error; err != nil {
		color.Red("Seed user failed: %v", err)
		os.Exit(1)
	}

	notebook := model.Notebook{OwnerId: user.Id}
	if err := db.Create(&notebook).Error; err != nil {
		color.Red("Seed notebook failed: %v", err)
		os.Exit(1)
	}

	revision := model.NotebookRevision{
		NotebookId: notebook.Id,
		Title:      names.RandomCompound(),
		Content:    seedIomd,
		IsDraft:    true,
	}
	if err := db.Create(&revision).Error; err != nil {
		color.Red("Seed revision failed: %v", err)
		os.Exit(1)
	}

	file := model.File{
		NotebookId:  notebook.Id,
		Filename:    "data.csv",
		Content:     []byte("x,y\n1,2\n3,4\n"),
		LastUpdated: time.Now(),
	}
	if err := db.Create(&file).Error; err != nil {
		color.Red("Seed file failed: %v", err)
		os.Exit(1)
	}

	daily := int64((24 * time.Hour).Seconds())
	source := model.FileSource{
		NotebookId:         notebook.Id,
		Filename:           "data.csv",
		URL:                "https://example.com/data.csv",
		UpdateIntervalSecs: &daily,
	}
	if err := db.Create(&source).Error; err != nil {
		color.Red("Seed file source failed: %v", err)
		os.Exit(1)
	}

	color.Green("Seed complete: user=%s notebook=%d revision=%d", user.Username, notebook.Id, revision.Id)
}
