package player

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"regexp"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// 存储路径常量
const playersObject = "players"

// 玩家 ID 同时作为 gdata 的属性名，只允许安全字符
var playerIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)

// LocalService 进程内的 Player Service
//
// 档案以 YAML 形式保存在 gdata 中（每个玩家一个属性）。
// gdataManager 为 nil 时进入降级模式：档案只保存在内存中。
// 所有方法都是并发安全的（HTTP 服务器会并发调用）。
type LocalService struct {
	mu           sync.Mutex
	gdataManager *gdata.Manager
	players      map[string]*Profile
	rng          *rand.Rand
	now          func() time.Time
}

// NewLocalService 创建本地 Player Service
//
// 参数：
//   - gdataManager: gdata 跨平台存储管理器，可为 nil（降级模式，仅内存）
//   - rng: 出题用的随机数源，为 nil 时使用当前时间作为种子
func NewLocalService(gdataManager *gdata.Manager, rng *rand.Rand) *LocalService {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &LocalService{
		gdataManager: gdataManager,
		players:      make(map[string]*Profile),
		rng:          rng,
		now:          time.Now,
	}
}

// CreateOrGetPlayer 创建玩家或返回已有档案
func (s *LocalService) CreateOrGetPlayer(ctx context.Context, id string) (*Profile, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if id == "" {
		id = uuid.NewString()
	}
	if !playerIDPattern.MatchString(id) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidPlayerID, id)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if p, err := s.loadLocked(id); err == nil {
		return p.clone(), nil
	} else if !errors.Is(err, ErrPlayerNotFound) {
		return nil, err
	}

	now := s.now().UTC()
	p := &Profile{
		PlayerID:      id,
		UnlockedSkins: []int{0},
		SelectedSkin:  0,
		QuestionLevel: 1,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.saveLocked(p); err != nil {
		return nil, err
	}
	log.Printf("[PlayerService] Created player %s", id)
	return p.clone(), nil
}

// GetPlayer 获取玩家档案
func (s *LocalService) GetPlayer(ctx context.Context, id string) (*Profile, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.loadLocked(id)
	if err != nil {
		return nil, err
	}
	return p.clone(), nil
}

// GetQuestion 按难度等级出题
func (s *LocalService) GetQuestion(ctx context.Context, level int) (*Question, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return GenerateQuestion(s.rng, level)
}

// SubmitAnswer 判题并结算
//
// 每次提交 questionsAnswered +1；答对时金币 +5、难度 +1。
func (s *LocalService) SubmitAnswer(ctx context.Context, req AnswerRequest) (*AnswerResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.loadLocked(req.PlayerID)
	if err != nil {
		return nil, err
	}

	correct := req.SelectedAnswer == req.CorrectAnswer
	p.QuestionsAnswered++
	earned := 0
	if correct {
		earned = CoinsPerCorrectAnswer
		p.Coins += earned
		p.QuestionLevel++
	}
	p.UpdatedAt = s.now().UTC()

	if err := s.saveLocked(p); err != nil {
		return nil, err
	}

	return &AnswerResult{
		Correct:     correct,
		CoinsEarned: earned,
		NewLevel:    p.QuestionLevel,
		TotalCoins:  p.Coins,
	}, nil
}

// GetEquippedSkin 返回玩家当前装备的皮肤
func (s *LocalService) GetEquippedSkin(ctx context.Context, playerID string) (int, error) {
	p, err := s.GetPlayer(ctx, playerID)
	if err != nil {
		return 0, err
	}
	return p.SelectedSkin, nil
}

// SelectSkin 装备一个已解锁的皮肤
func (s *LocalService) SelectSkin(ctx context.Context, playerID string, skin int) (*Profile, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.loadLocked(playerID)
	if err != nil {
		return nil, err
	}
	if !p.HasSkin(skin) {
		return nil, fmt.Errorf("%w: %d", ErrSkinNotOwned, skin)
	}

	p.SelectedSkin = skin
	p.UpdatedAt = s.now().UTC()
	if err := s.saveLocked(p); err != nil {
		return nil, err
	}
	return p.clone(), nil
}

// UnlockSkin 直接解锁皮肤，不扣金币
//
// 启动时 RoundSystem.RefreshProfile 用它装备 -skin 指定的皮肤，
// 开发服务器的 POST /api/unlock-skin/{id}/{skin} 也调用它。
func (s *LocalService) UnlockSkin(ctx context.Context, playerID string, skin int) (*Profile, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.loadLocked(playerID)
	if err != nil {
		return nil, err
	}
	if !p.HasSkin(skin) {
		p.UnlockedSkins = append(p.UnlockedSkins, skin)
		p.UpdatedAt = s.now().UTC()
		if err := s.saveLocked(p); err != nil {
			return nil, err
		}
	}
	return p.clone(), nil
}

// loadLocked 从内存缓存或 gdata 读取档案，调用方必须持有 s.mu
func (s *LocalService) loadLocked(id string) (*Profile, error) {
	if !playerIDPattern.MatchString(id) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidPlayerID, id)
	}
	if p, ok := s.players[id]; ok {
		return p, nil
	}

	// 降级模式：只有内存中的档案
	if s.gdataManager == nil || !s.gdataManager.ObjectPropExists(playersObject, id) {
		return nil, ErrPlayerNotFound
	}

	data, err := s.gdataManager.LoadObjectProp(playersObject, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load player %s: %w", id, err)
	}
	var p Profile
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to unmarshal player %s: %w", id, err)
	}
	if p.QuestionLevel < 1 {
		p.QuestionLevel = 1
	}
	if !p.HasSkin(0) {
		p.UnlockedSkins = append([]int{0}, p.UnlockedSkins...)
	}

	s.players[id] = &p
	return &p, nil
}

// saveLocked 更新内存缓存并持久化，调用方必须持有 s.mu
func (s *LocalService) saveLocked(p *Profile) error {
	s.players[p.PlayerID] = p

	// 降级模式：无法持久化，但不报错
	if s.gdataManager == nil {
		return nil
	}

	data, err := yaml.Marshal(p)
	if err != nil {
		return fmt.Errorf("failed to marshal player %s: %w", p.PlayerID, err)
	}
	if err := s.gdataManager.SaveObjectProp(playersObject, p.PlayerID, data); err != nil {
		return fmt.Errorf("failed to save player %s: %w", p.PlayerID, err)
	}
	return nil
}
