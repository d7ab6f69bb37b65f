// Package memstore is an in-memory interfaces.Store used by service tests,
// so the scan workflow can be exercised without Postgres or Redis.
package memstore

import (
	"context"
	"database/sql"
	"sync"
	"time"

	"loyalt/internal/interfaces"
	"loyalt/internal/models"

	"github.com/google/uuid"
)

type MemStore struct {
	mu           sync.Mutex
	profiles     map[string]*models.Profile    // by user id
	shops        map[string]*models.Shop       // by shop id
	rewards      map[string]*models.Reward     // by reward id
	userRewards  map[string]*models.UserReward // by user id + "/" + reward id
	codes        map[string]*models.QRCode     // by code id
	configs      map[string]string             // by config key
	transactions []models.Transaction
}

var _ interfaces.Store = (*MemStore)(nil)

func New() *MemStore {
	return &MemStore{
		profiles:    map[string]*models.Profile{},
		shops:       map[string]*models.Shop{},
		rewards:     map[string]*models.Reward{},
		userRewards: map[string]*models.UserReward{},
		codes:       map[string]*models.QRCode{},
		configs:     map[string]string{},
	}
}

func userRewardKey(userID, rewardID string) string {
	return userID + "/" + rewardID
}

func (s *MemStore) AddShop(shop *models.Shop) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.shops[shop.ID] = shop
}

func (s *MemStore) AddReward(reward *models.Reward) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rewards[reward.ID] = reward
}

func (s *MemStore) AddQRCode(code *models.QRCode) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.codes[code.ID] = code
}

func (s *MemStore) SetConfig(key, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.configs[key] = value
}

func (s *MemStore) GetProfile(ctx context.Context, userID string) (*models.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	profile, ok := s.profiles[userID]
	if !ok {
		return nil, sql.ErrNoRows
	}
	copied := *profile
	return &copied, nil
}

func (s *MemStore) CreateProfile(ctx context.Context, profile *models.Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if profile.ID == "" {
		profile.ID = uuid.NewString()
	}
	copied := *profile
	s.profiles[profile.UserID] = &copied
	return nil
}

func (s *MemStore) ApplyPointsChange(ctx context.Context, userID, shopID string, delta int, description string) (*models.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	profile, ok := s.profiles[userID]
	if !ok {
		return nil, sql.ErrNoRows
	}

	newPoints := profile.Points + delta
	if newPoints < 0 {
		return nil, interfaces.ErrInsufficientPoints
	}

	kind := models.TransactionRedeem
	if delta > 0 {
		kind = models.TransactionEarn
	}
	s.transactions = append(s.transactions, models.Transaction{
		ID:          uuid.NewString(),
		UserID:      userID,
		ShopID:      shopID,
		Points:      delta,
		Type:        kind,
		Description: description,
		CreatedAt:   time.Now(),
	})

	profile.Points = newPoints
	profile.MembershipLevel = models.TierForPoints(newPoints)
	profile.UpdatedAt = time.Now()

	copied := *profile
	return &copied, nil
}

func (s *MemStore) GetTransactionsByUser(ctx context.Context, userID string, limit int) ([]models.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []models.Transaction
	for i := len(s.transactions) - 1; i >= 0; i-- {
		if s.transactions[i].UserID != userID {
			continue
		}
		out = append(out, s.transactions[i])
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out, nil
}

func (s *MemStore) GetShop(ctx context.Context, shopID string) (*models.Shop, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	shop, ok := s.shops[shopID]
	if !ok {
		return nil, sql.ErrNoRows
	}
	copied := *shop
	return &copied, nil
}

func (s *MemStore) ListShops(ctx context.Context) ([]models.Shop, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Shop, 0, len(s.shops))
	for _, shop := range s.shops {
		out = append(out, *shop)
	}
	return out, nil
}

func (s *MemStore) GetReward(ctx context.Context, rewardID string) (*models.Reward, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	reward, ok := s.rewards[rewardID]
	if !ok {
		return nil, sql.ErrNoRows
	}
	copied := *reward
	return &copied, nil
}

func (s *MemStore) ListActiveRewards(ctx context.Context, now time.Time) ([]models.Reward, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []models.Reward
	for _, reward := range s.rewards {
		if reward.IsActive && !reward.ExpiryDate.Before(now) {
			out = append(out, *reward)
		}
	}
	return out, nil
}

func (s *MemStore) GetUserReward(ctx context.Context, userID, rewardID string) (*models.UserReward, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	userReward, ok := s.userRewards[userRewardKey(userID, rewardID)]
	if !ok {
		return nil, sql.ErrNoRows
	}
	copied := *userReward
	return &copied, nil
}

func (s *MemStore) ListUserRewards(ctx context.Context, userID string) ([]models.UserReward, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []models.UserReward
	for _, userReward := range s.userRewards {
		if userReward.UserID == userID {
			out = append(out, *userReward)
		}
	}
	return out, nil
}

func (s *MemStore) InsertUserReward(ctx context.Context, userReward *models.UserReward) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if userReward.ID == "" {
		userReward.ID = uuid.NewString()
	}
	copied := *userReward
	s.userRewards[userRewardKey(userReward.UserID, userReward.RewardID)] = &copied
	return nil
}

func (s *MemStore) RedeemUserReward(ctx context.Context, userID, rewardID string, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	userReward, ok := s.userRewards[userRewardKey(userID, rewardID)]
	if !ok {
		return sql.ErrNoRows
	}
	if userReward.Redeemed {
		return interfaces.ErrAlreadyRedeemed
	}

	userReward.Redeemed = true
	redeemedAt := at
	userReward.RedeemedDate = &redeemedAt
	return nil
}

func (s *MemStore) GetQRCode(ctx context.Context, codeID string) (*models.QRCode, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	code, ok := s.codes[codeID]
	if !ok {
		return nil, sql.ErrNoRows
	}
	copied := *code
	return &copied, nil
}

func (s *MemStore) ConsumeQRCode(ctx context.Context, codeID string, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	code, ok := s.codes[codeID]
	if !ok {
		return sql.ErrNoRows
	}
	if code.Used {
		return interfaces.ErrCodeAlreadyUsed
	}

	code.Used = true
	usedAt := at
	code.UsedAt = &usedAt
	return nil
}

func (s *MemStore) GetConfig(ctx context.Context, key string) (*models.Config, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	value, ok := s.configs[key]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &models.Config{Key: key, Value: value}, nil
}
