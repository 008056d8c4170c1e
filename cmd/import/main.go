// Command import loads a word list from an .xlsx or .csv file into a profile.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/aliskhannn/vocab-companion/internal/app"
	"github.com/aliskhannn/vocab-companion/internal/config"
	"github.com/aliskhannn/vocab-companion/internal/domain/entities"
	"github.com/aliskhannn/vocab-companion/internal/importer"
	"github.com/aliskhannn/vocab-companion/internal/logger"
	"github.com/aliskhannn/vocab-companion/internal/repository"
	"github.com/aliskhannn/vocab-companion/internal/service"
)

func main() {
	var (
		filePath  = flag.String("file", "", "path to the .xlsx or .csv file")
		profileID = flag.String("profile", "", "profile ID, the current profile when empty")
		sheet     = flag.String("sheet", "", "Excel sheet name, the first sheet when empty")
		list      = flag.Bool("list", false, "list profiles and exit")
	)
	flag.Parse()

	if *filePath == "" && !*list {
		flag.Usage()
		os.Exit(2)
	}

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	lg, err := logger.New(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = lg.Sync() }()

	if *list {
		if err := listProfiles(context.Background(), cfg, lg); err != nil {
			lg.Fatal("list profiles failed", zap.Error(err))
		}
		return
	}

	if err := run(context.Background(), cfg, lg, *filePath, *profileID, *sheet); err != nil {
		lg.Fatal("import failed", zap.Error(err))
	}
}

func listProfiles(ctx context.Context, cfg *config.Config, lg *zap.Logger) error {
	loc, err := cfg.Streak.Location()
	if err != nil {
		return err
	}

	store, err := app.OpenStore(ctx, cfg)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer store.Close()

	profileService := service.NewProfileService(
		repository.NewProfileRepository(store),
		repository.NewPreferencesRepository(store),
		time.Now, loc, lg,
	)

	profiles, err := profileService.List(ctx)
	if err != nil {
		return err
	}

	for _, p := range profiles {
		fmt.Printf("%s\t%s\t%s\n", p.ID, p.Name, p.Level())
	}
	return nil
}

func run(ctx context.Context, cfg *config.Config, lg *zap.Logger, filePath, profileID, sheet string) error {
	loc, err := cfg.Streak.Location()
	if err != nil {
		return err
	}

	store, err := app.OpenStore(ctx, cfg)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer store.Close()

	profileRepo := repository.NewProfileRepository(store)
	wordRepo := repository.NewWordRepository(store)
	prefsRepo := repository.NewPreferencesRepository(store)

	now := time.Now
	profileService := service.NewProfileService(profileRepo, prefsRepo, now, loc, lg)
	progressService := service.NewProgressService(profileRepo, wordRepo, now, lg)
	vocabService := service.NewVocabularyService(wordRepo, profileService, progressService, now, lg)

	var profile *entities.Profile
	if profileID == "" {
		profile, err = profileService.Current(ctx)
	} else {
		profile, err = profileService.Get(ctx, profileID)
	}
	if err != nil {
		return fmt.Errorf("resolve profile: %w", err)
	}

	res, err := importer.ReadFile(afero.NewOsFs(), filePath, importer.Options{Sheet: sheet})
	if err != nil {
		return err
	}

	for _, msg := range res.Errors {
		lg.Warn("row skipped", zap.String("reason", msg))
	}

	created, merged, err := vocabService.ImportWords(ctx, profile.ID, res.Words)
	if err != nil {
		return err
	}

	lg.Info("import finished",
		zap.String("profile_id", profile.ID),
		zap.String("file", filePath),
		zap.Int("created", created),
		zap.Int("merged", merged),
		zap.Int("skipped", res.Skipped),
	)

	return nil
}
