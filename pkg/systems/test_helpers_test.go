package systems

import (
	"context"
	"sync"
	"testing"

	"github.com/decker502/slingmath/pkg/components"
	"github.com/decker502/slingmath/pkg/config"
	"github.com/decker502/slingmath/pkg/ecs"
	"github.com/decker502/slingmath/pkg/game"
	"github.com/decker502/slingmath/pkg/player"
)

// newTestState 创建 800x600 的空模拟状态（没有靶子），锚点为 (400, 520)
func newTestState(t *testing.T) *game.SimulationState {
	t.Helper()
	return game.NewSimulationState(config.DefaultGameConfig(), nil, 800, 600, 42)
}

// addTarget 在指定位置放置一个靶子
func addTarget(t *testing.T, state *game.SimulationState, x, y, vx, vy float64) ecs.EntityID {
	t.Helper()
	em := state.EntityManager
	id := em.CreateEntity()
	em.AddComponent(id, &components.PositionComponent{X: x, Y: y})
	em.AddComponent(id, &components.VelocityComponent{VX: vx, VY: vy})
	em.AddComponent(id, &components.TargetComponent{ID: "target", Radius: state.Config.Targets.Radius})
	return id
}

// addProjectile 放置弹丸并登记为当前弹丸
func addProjectile(t *testing.T, state *game.SimulationState, x, y, vx, vy float64) ecs.EntityID {
	t.Helper()
	em := state.EntityManager
	id := em.CreateEntity()
	em.AddComponent(id, &components.PositionComponent{X: x, Y: y})
	em.AddComponent(id, &components.VelocityComponent{VX: vx, VY: vy})
	em.AddComponent(id, &components.ProjectileComponent{Radius: state.Config.Physics.ProjectileRadius})
	state.ProjectileID = id
	return id
}

func targetComp(t *testing.T, state *game.SimulationState, id ecs.EntityID) *components.TargetComponent {
	t.Helper()
	tc, ok := ecs.GetComponent[*components.TargetComponent](state.EntityManager, id)
	if !ok {
		t.Fatalf("entity %d has no TargetComponent", id)
	}
	return tc
}

func positionOf(t *testing.T, state *game.SimulationState, id ecs.EntityID) *components.PositionComponent {
	t.Helper()
	pos, ok := ecs.GetComponent[*components.PositionComponent](state.EntityManager, id)
	if !ok {
		t.Fatalf("entity %d has no PositionComponent", id)
	}
	return pos
}

// countParticles 统计指定粒子族的存活粒子数
func countParticles(state *game.SimulationState, family components.ParticleFamily) int {
	em := state.EntityManager
	n := 0
	for _, id := range ecs.GetEntitiesWith1[*components.ParticleComponent](em) {
		if em.IsMarkedForDestroy(id) {
			continue
		}
		p, _ := ecs.GetComponent[*components.ParticleComponent](em, id)
		if p.Family == family {
			n++
		}
	}
	return n
}

// countingTrigger 记录 BeginRound 调用
type countingTrigger struct {
	calls int
	x, y  float64
}

func (c *countingTrigger) BeginRound(x, y float64) bool {
	c.calls++
	c.x, c.y = x, y
	return true
}

// syncDispatch 在当前协程中同步执行任务
func syncDispatch(task func()) { task() }

// stubService 可配置返回值的 Player Service
type stubService struct {
	mu sync.Mutex

	question    *player.Question
	questionErr error
	answer      *player.AnswerResult
	answerErr   error
	skin        int
	profile     *player.Profile

	questionCalls int
	answerCalls   int
	lastLevel     int
	lastAnswer    player.AnswerRequest
}

func newStubService() *stubService {
	return &stubService{
		question: &player.Question{
			Question:      "2 + 3 = ?",
			CorrectAnswer: 5,
			Options:       []int{4, 5, 6},
			Level:         1,
			Operation:     "addition",
		},
		answer: &player.AnswerResult{Correct: true, CoinsEarned: 5, NewLevel: 2, TotalCoins: 5},
		profile: &player.Profile{
			PlayerID:      "tester",
			Coins:         15,
			QuestionLevel: 4,
			UnlockedSkins: []int{0, 5},
			SelectedSkin:  5,
		},
		skin: 5,
	}
}

func (s *stubService) CreateOrGetPlayer(ctx context.Context, id string) (*player.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := *s.profile
	return &p, nil
}

func (s *stubService) GetPlayer(ctx context.Context, id string) (*player.Profile, error) {
	return s.CreateOrGetPlayer(ctx, id)
}

func (s *stubService) GetQuestion(ctx context.Context, level int) (*player.Question, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.questionCalls++
	s.lastLevel = level
	return s.question, s.questionErr
}

func (s *stubService) SubmitAnswer(ctx context.Context, req player.AnswerRequest) (*player.AnswerResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.answerCalls++
	s.lastAnswer = req
	return s.answer, s.answerErr
}

func (s *stubService) GetEquippedSkin(ctx context.Context, playerID string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.skin, nil
}

func (s *stubService) SelectSkin(ctx context.Context, playerID string, skin int) (*player.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.skin = skin
	p := *s.profile
	p.SelectedSkin = skin
	return &p, nil
}
