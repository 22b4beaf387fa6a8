package game

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

// MockScene is a mock implementation of the Scene interface for testing.
type MockScene struct {
	updateCalled bool
	drawCalled   bool
	deltaTime    float64
}

// Update records that Update was called and stores the deltaTime.
func (m *MockScene) Update(deltaTime float64) {
	m.updateCalled = true
	m.deltaTime = deltaTime
}

// Draw records that Draw was called.
func (m *MockScene) Draw(screen *ebiten.Image) {
	m.drawCalled = true
}

// MockResizableScene also records resize notifications.
type MockResizableScene struct {
	MockScene
	resizes [][2]int
}

func (m *MockResizableScene) Resize(width, height int) {
	m.resizes = append(m.resizes, [2]int{width, height})
}

// TestNewSceneManager verifies that NewSceneManager creates a valid instance.
func TestNewSceneManager(t *testing.T) {
	sm := NewSceneManager()
	if sm == nil {
		t.Fatal("NewSceneManager() returned nil")
	}
	if sm.GetCurrentScene() != nil {
		t.Error("Expected currentScene to be nil initially")
	}
}

// TestSceneManagerUpdate verifies that Update calls the current scene's Update method.
func TestSceneManagerUpdate(t *testing.T) {
	sm := NewSceneManager()
	mockScene := &MockScene{}
	sm.SwitchTo(mockScene)

	deltaTime := 1.0 / 60.0
	sm.Update(deltaTime)

	if !mockScene.updateCalled {
		t.Error("Scene's Update method was not called")
	}
	if mockScene.deltaTime != deltaTime {
		t.Errorf("Expected deltaTime %.3f, got %.3f", deltaTime, mockScene.deltaTime)
	}
}

// TestSceneManagerNoScene verifies that Update and Draw handle a nil scene gracefully.
func TestSceneManagerNoScene(t *testing.T) {
	sm := NewSceneManager()
	sm.Update(1.0 / 60.0) // Should not panic
	sm.Draw(nil)          // Should not panic
	sm.Resize(800, 600)   // Should not panic
}

// TestSceneManagerDraw verifies that Draw calls the current scene's Draw method.
func TestSceneManagerDraw(t *testing.T) {
	sm := NewSceneManager()
	mockScene := &MockScene{}
	sm.SwitchTo(mockScene)

	sm.Draw(nil)

	if !mockScene.drawCalled {
		t.Error("Scene's Draw method was not called")
	}
}

// TestSceneManagerResize verifies resize notifications.
func TestSceneManagerResize(t *testing.T) {
	sm := NewSceneManager()
	scene := &MockResizableScene{}
	sm.SwitchTo(scene)

	sm.Resize(800, 600)
	sm.Resize(800, 600) // 尺寸未变化，不重复通知
	sm.Resize(1024, 768)

	if len(scene.resizes) != 2 {
		t.Fatalf("expected 2 resize notifications, got %v", scene.resizes)
	}
	if scene.resizes[1] != [2]int{1024, 768} {
		t.Errorf("unexpected last resize %v", scene.resizes[1])
	}

	// 新场景立即收到已知尺寸
	next := &MockResizableScene{}
	sm.SwitchTo(next)
	if len(next.resizes) != 1 || next.resizes[0] != [2]int{1024, 768} {
		t.Errorf("new scene should receive current size, got %v", next.resizes)
	}
}

// TestSceneManagerSwitchBetweenScenes verifies switching between multiple scenes.
func TestSceneManagerSwitchBetweenScenes(t *testing.T) {
	sm := NewSceneManager()
	scene1 := &MockScene{}
	scene2 := &MockScene{}

	sm.SwitchTo(scene1)
	sm.Update(0.016)

	if !scene1.updateCalled {
		t.Error("Scene1's Update was not called")
	}
	if scene2.updateCalled {
		t.Error("Scene2's Update should not have been called yet")
	}

	sm.SwitchTo(scene2)
	sm.Update(0.016)

	if !scene2.updateCalled {
		t.Error("Scene2's Update was not called after switching")
	}
}
