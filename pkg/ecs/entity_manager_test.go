package ecs

import (
	"reflect"
	"testing"
)

// 测试组件类型定义
type testPositionComponent struct {
	X, Y float64
}

type testVelocityComponent struct {
	VX, VY float64
}

func TestCreateEntity(t *testing.T) {
	em := NewEntityManager()
	id1 := em.CreateEntity()
	id2 := em.CreateEntity()

	// 测试实体ID唯一性
	if id1 == id2 {
		t.Error("Entity IDs should be unique")
	}

	// 测试ID从1开始
	if id1 != 1 {
		t.Errorf("First entity ID should be 1, got %d", id1)
	}

	if em.EntityCount() != 2 {
		t.Errorf("Expected 2 entities, got %d", em.EntityCount())
	}
}

func TestAddAndGetComponent(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()

	em.AddComponent(id, &testPositionComponent{X: 100, Y: 200})

	comp, found := em.GetComponent(id, reflect.TypeOf(&testPositionComponent{}))
	if !found {
		t.Fatal("Component should be found")
	}

	retrieved := comp.(*testPositionComponent)
	if retrieved.X != 100 || retrieved.Y != 200 {
		t.Errorf("Component data mismatch, expected (100, 200), got (%f, %f)", retrieved.X, retrieved.Y)
	}
}

func TestGenericGetComponent(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()
	em.AddComponent(id, &testVelocityComponent{VX: 3, VY: -4})

	vel, ok := GetComponent[*testVelocityComponent](em, id)
	if !ok {
		t.Fatal("Generic GetComponent should find the velocity component")
	}
	if vel.VX != 3 || vel.VY != -4 {
		t.Errorf("Expected (3, -4), got (%f, %f)", vel.VX, vel.VY)
	}

	if _, ok := GetComponent[*testPositionComponent](em, id); ok {
		t.Error("Position component was never added")
	}
	if !HasComponent[*testVelocityComponent](em, id) {
		t.Error("HasComponent should report the velocity component")
	}
}

func TestDestroyEntity(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()
	em.AddComponent(id, &testPositionComponent{})

	// 标记删除
	em.DestroyEntity(id)

	// 清理前实体仍存在
	if !em.HasComponent(id, reflect.TypeOf(&testPositionComponent{})) {
		t.Error("Entity should still exist before cleanup")
	}
	if !em.IsMarkedForDestroy(id) {
		t.Error("Entity should be marked for destroy")
	}

	// 清理后实体消失
	em.RemoveMarkedEntities()
	if em.Exists(id) {
		t.Error("Entity should be removed after cleanup")
	}
	if em.IsMarkedForDestroy(id) {
		t.Error("Destroy list should be empty after cleanup")
	}
}

func TestGetEntitiesWith(t *testing.T) {
	em := NewEntityManager()

	// 创建不同组件组合的实体
	id1 := em.CreateEntity()
	em.AddComponent(id1, &testPositionComponent{})
	em.AddComponent(id1, &testVelocityComponent{})

	id2 := em.CreateEntity()
	em.AddComponent(id2, &testPositionComponent{})

	id3 := em.CreateEntity()
	em.AddComponent(id3, &testVelocityComponent{})

	entities := GetEntitiesWith2[*testPositionComponent, *testVelocityComponent](em)
	if len(entities) != 1 || entities[0] != id1 {
		t.Errorf("Expected only id1, got %v", entities)
	}

	posEntities := GetEntitiesWith1[*testPositionComponent](em)
	if len(posEntities) != 2 {
		t.Errorf("Expected 2 entities with Position component, got %d", len(posEntities))
	}
}

// TestQueryOrderFollowsCreation 查询结果必须保持创建顺序（碰撞检测依赖此顺序）
func TestQueryOrderFollowsCreation(t *testing.T) {
	em := NewEntityManager()

	ids := make([]EntityID, 0, 20)
	for i := 0; i < 20; i++ {
		id := em.CreateEntity()
		em.AddComponent(id, &testPositionComponent{X: float64(i)})
		ids = append(ids, id)
	}

	// 删除中间几个实体后顺序仍然保持
	em.DestroyEntity(ids[3])
	em.DestroyEntity(ids[10])
	em.RemoveMarkedEntities()

	got := GetEntitiesWith1[*testPositionComponent](em)
	if len(got) != 18 {
		t.Fatalf("Expected 18 entities, got %d", len(got))
	}
	for i := 1; i < len(got); i++ {
		if got[i] <= got[i-1] {
			t.Fatalf("Query result not in creation order: %v", got)
		}
	}
}

func TestDestroyMultipleEntities(t *testing.T) {
	em := NewEntityManager()

	id1 := em.CreateEntity()
	id2 := em.CreateEntity()
	id3 := em.CreateEntity()

	em.AddComponent(id1, &testPositionComponent{})
	em.AddComponent(id2, &testPositionComponent{})
	em.AddComponent(id3, &testPositionComponent{})

	em.DestroyEntity(id1)
	em.DestroyEntity(id3)
	em.DestroyEntity(id3) // 重复标记不应出错

	em.RemoveMarkedEntities()

	if em.Exists(id1) || em.Exists(id3) {
		t.Error("id1 and id3 should be removed")
	}
	if !em.Exists(id2) {
		t.Error("id2 should still exist")
	}
	if em.EntityCount() != 1 {
		t.Errorf("Expected 1 remaining entity, got %d", em.EntityCount())
	}
}

func BenchmarkGetEntitiesWith2(b *testing.B) {
	em := NewEntityManager()
	for i := 0; i < 500; i++ {
		id := em.CreateEntity()
		em.AddComponent(id, &testPositionComponent{})
		if i%2 == 0 {
			em.AddComponent(id, &testVelocityComponent{})
		}
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = GetEntitiesWith2[*testPositionComponent, *testVelocityComponent](em)
	}
}
