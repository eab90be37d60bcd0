package analytics

import (
	"context"
	"fmt"

	"github.com/jhoicas/Ristoranti-api/internal/application/dto"
	"github.com/jhoicas/Ristoranti-api/internal/domain"
	"github.com/jhoicas/Ristoranti-api/internal/domain/cannibalization"
	"github.com/jhoicas/Ristoranti-api/internal/domain/repository"
)

// CannibalizationUseCase mide el efecto de la apertura de un locale sobre las ventas de los demás.
type CannibalizationUseCase struct {
	storeRepo   repository.StoreRepository
	revenueRepo repository.RevenueRepository
}

// NewCannibalizationUseCase construye el caso de uso.
func NewCannibalizationUseCase(storeRepo repository.StoreRepository, revenueRepo repository.RevenueRepository) *CannibalizationUseCase {
	return &CannibalizationUseCase{storeRepo: storeRepo, revenueRepo: revenueRepo}
}

// Analyze compara la media diaria de ventas de los locales existentes N días antes y después
// de la apertura. Sin ExistingStoreIDs se usan todos los locales activos salvo el nuevo.
func (uc *CannibalizationUseCase) Analyze(ctx context.Context, in dto.CannibalizationRequest) (*dto.CannibalizationResponse, error) {
	newStore, err := uc.storeRepo.GetByID(ctx, in.NewStoreID)
	if err != nil {
		return nil, err
	}
	if newStore == nil {
		return nil, domain.ErrNotFound
	}
	if newStore.OpeningDate == nil {
		return nil, fmt.Errorf("%w: el locale %q no tiene fecha de apertura", domain.ErrInvalidInput, newStore.Name)
	}

	stores, err := uc.storeRepo.List(ctx, false)
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(stores))
	for _, s := range stores {
		names[s.ID] = s.Name
	}
	existing := in.ExistingStoreIDs
	if len(existing) == 0 {
		for _, s := range stores {
			if s.Active && s.ID != newStore.ID {
				existing = append(existing, s.ID)
			}
		}
	}

	windowDays := in.WindowDays
	if windowDays <= 0 {
		windowDays = cannibalization.DefaultWindowDays
	}
	before, after := cannibalization.Windows(*newStore.OpeningDate, windowDays)
	ids := append([]string{newStore.ID}, existing...)
	records, err := uc.revenueRepo.List(ctx, repository.RevenueFilter{StoreIDs: ids, From: before.Start, To: after.End})
	if err != nil {
		return nil, fmt.Errorf("cannibalizzazione: ventas: %w", err)
	}

	res := cannibalization.Analyze(newStore.ID, *newStore.OpeningDate, windowDays, existing, records)
	out := &dto.CannibalizationResponse{
		NewStoreID:       newStore.ID,
		NewStoreName:     newStore.Name,
		OpeningDate:      res.OpeningDate.Format("2006-01-02"),
		WindowDays:       res.WindowDays,
		NewStoreAvgAfter: res.NewStoreAvgAfter,
		Stores:           make([]dto.StoreImpactDTO, 0, len(res.Stores)),
		TotalAvgBefore:   res.TotalAvgBefore,
		TotalAvgAfter:    res.TotalAvgAfter,
		TotalDelta:       res.TotalDelta,
		TotalDeltaPct:    res.TotalDeltaPct,
	}
	for _, s := range res.Stores {
		out.Stores = append(out.Stores, dto.StoreImpactDTO{
			StoreID:    s.StoreID,
			StoreName:  names[s.StoreID],
			AvgBefore:  s.AvgBefore,
			AvgAfter:   s.AvgAfter,
			Delta:      s.Delta,
			DeltaPct:   s.DeltaPct,
			DaysBefore: s.DaysBefore,
			DaysAfter:  s.DaysAfter,
		})
	}
	return out, nil
}
