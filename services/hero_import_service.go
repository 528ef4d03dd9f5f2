package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/go-co-op/gocron/v2"

	"github.com/dota-journal/match-journal/backend/models"
	"github.com/dota-journal/match-journal/backend/repository"
	"github.com/dota-journal/match-journal/backend/websocket"
)

// HeroImportService keeps the hero catalog in sync with OpenDota
type HeroImportService struct {
	heroRepo  *repository.HeroRepository
	hub       *websocket.Hub
	baseURL   string
	client    *http.Client
	scheduler gocron.Scheduler
}

// NewHeroImportService creates a new hero import service
func NewHeroImportService(heroRepo *repository.HeroRepository, hub *websocket.Hub, baseURL string) *HeroImportService {
	return &HeroImportService{
		heroRepo: heroRepo,
		hub:      hub,
		baseURL:  strings.TrimSuffix(baseURL, "/"),
		client:   &http.Client{Timeout: 30 * time.Second},
	}
}

type openDotaHero struct {
	ID            int      `json:"id"`
	Name          string   `json:"name"`
	LocalizedName string   `json:"localized_name"`
	PrimaryAttr   string   `json:"primary_attr"`
	AttackType    string   `json:"attack_type"`
	Roles         []string `json:"roles"`
	Complexity    int      `json:"complexity"`
}

// Import fetches the hero catalog from OpenDota and replaces the
// stored one in a single transaction
func (s *HeroImportService) Import(ctx context.Context) error {
	url := s.baseURL + "/api/heroes"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to build heroes request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to fetch heroes: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("heroes request returned status %d", resp.StatusCode)
	}

	var raw []openDotaHero
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return fmt.Errorf("failed to decode heroes response: %w", err)
	}

	heroes := make([]models.Hero, 0, len(raw))
	for _, h := range raw {
		complexity := h.Complexity
		if complexity < 1 {
			complexity = 1
		}
		heroes = append(heroes, models.Hero{
			ID:            h.ID,
			Name:          strings.TrimPrefix(h.Name, "npc_dota_hero_"),
			LocalizedName: h.LocalizedName,
			PrimaryAttr:   h.PrimaryAttr,
			AttackType:    h.AttackType,
			Roles:         strings.Join(h.Roles, ","),
			Complexity:    complexity,
		})
	}

	if err := s.heroRepo.ReplaceAll(heroes); err != nil {
		return fmt.Errorf("failed to store heroes: %w", err)
	}

	log.Printf("Imported %d heroes from OpenDota", len(heroes))
	if s.hub != nil {
		s.hub.BroadcastHeroesSynced(len(heroes))
	}
	return nil
}

// StartSchedule runs an import immediately when the catalog is empty
// and then re-imports on the given interval
func (s *HeroImportService) StartSchedule(interval time.Duration) error {
	count, err := s.heroRepo.Count()
	if err != nil {
		return fmt.Errorf("failed to check hero catalog: %w", err)
	}
	if count == 0 {
		go s.runImport()
	}

	sched, err := gocron.NewScheduler()
	if err != nil {
		return fmt.Errorf("failed to create scheduler: %w", err)
	}
	s.scheduler = sched

	if _, err := sched.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(s.runImport),
	); err != nil {
		return fmt.Errorf("failed to schedule hero import: %w", err)
	}

	sched.Start()
	log.Printf("Hero import scheduled every %s", interval)
	return nil
}

func (s *HeroImportService) runImport() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()
	if err := s.Import(ctx); err != nil {
		log.Printf("Hero import failed: %v", err)
	}
}

// Stop shuts down the import scheduler
func (s *HeroImportService) Stop() {
	if s.scheduler != nil {
		if err := s.scheduler.Shutdown(); err != nil {
			log.Printf("Failed to stop hero import scheduler: %v", err)
		}
	}
}
