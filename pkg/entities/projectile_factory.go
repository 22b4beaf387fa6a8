package entities

import (
	"fmt"

	"github.com/decker502/slingmath/pkg/components"
	"github.com/decker502/slingmath/pkg/ecs"
)

// NewProjectile 创建弹丸实体
// 弹丸从拉拽点发射，之后受重力影响做抛物线运动
//
// 参数:
//   - em: 实体管理器
//   - x, y: 发射位置（拉拽点）
//   - vx, vy: 初速度（像素/帧）
//   - radius: 碰撞半径
//
// 返回:
//   - ecs.EntityID: 创建的弹丸实体ID
//   - error: 如果创建失败返回错误信息
func NewProjectile(em *ecs.EntityManager, x, y, vx, vy, radius float64) (ecs.EntityID, error) {
	if em == nil {
		return 0, fmt.Errorf("entity manager cannot be nil")
	}
	if radius <= 0 {
		return 0, fmt.Errorf("projectile radius must be > 0, got %.1f", radius)
	}

	entityID := em.CreateEntity()
	em.AddComponent(entityID, &components.PositionComponent{X: x, Y: y})
	em.AddComponent(entityID, &components.VelocityComponent{VX: vx, VY: vy})
	em.AddComponent(entityID, &components.ProjectileComponent{Radius: radius})

	return entityID, nil
}
