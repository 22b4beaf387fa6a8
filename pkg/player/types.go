// Package player 提供 Player Service：出题、判题奖励与皮肤选择
//
// 模拟核心只依赖 Service 接口；LocalService 在进程内实现
// （gdata 持久化），HTTPClient 通过 HTTP 调用 cmd/slingmath-server。
package player

import (
	"context"
	"time"
)

// 每答对一题奖励的金币
const CoinsPerCorrectAnswer = 5

// Question 一道算术题
type Question struct {
	Question      string `json:"question"`
	CorrectAnswer int    `json:"correctAnswer"`
	Options       []int  `json:"options"`
	Level         int    `json:"level"`
	Operation     string `json:"operation"`
}

// AnswerRequest 提交答案的请求
type AnswerRequest struct {
	PlayerID       string `json:"playerId"`
	SelectedAnswer int    `json:"selectedAnswer"`
	CorrectAnswer  int    `json:"correctAnswer"`
	Level          int    `json:"level"`
}

// AnswerResult 判题结果
type AnswerResult struct {
	Correct     bool `json:"correct"`
	CoinsEarned int  `json:"coinsEarned"`
	NewLevel    int  `json:"newLevel"`
	TotalCoins  int  `json:"totalCoins"`
}

// Profile 玩家档案
type Profile struct {
	PlayerID          string    `json:"playerId" yaml:"playerId"`
	Coins             int       `json:"coins" yaml:"coins"`
	UnlockedSkins     []int     `json:"unlockedSkins" yaml:"unlockedSkins"`
	SelectedSkin      int       `json:"selectedSkin" yaml:"selectedSkin"`
	QuestionLevel     int       `json:"questionLevel" yaml:"questionLevel"`
	QuestionsAnswered int       `json:"questionsAnswered" yaml:"questionsAnswered"`
	CreatedAt         time.Time `json:"createdAt" yaml:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt" yaml:"updatedAt"`
}

// HasSkin 玩家是否已解锁皮肤
func (p *Profile) HasSkin(skin int) bool {
	for _, s := range p.UnlockedSkins {
		if s == skin {
			return true
		}
	}
	return false
}

func (p *Profile) clone() *Profile {
	c := *p
	c.UnlockedSkins = append([]int(nil), p.UnlockedSkins...)
	return &c
}

// Service Player Service 接口
//
// 所有方法都可能阻塞（网络调用），调用方通过 ctx 控制超时。
type Service interface {
	// CreateOrGetPlayer 创建玩家或返回已有档案；id 为空时生成新的 UUID
	CreateOrGetPlayer(ctx context.Context, id string) (*Profile, error)
	// GetPlayer 获取玩家档案
	GetPlayer(ctx context.Context, id string) (*Profile, error)
	// GetQuestion 按难度等级出题
	GetQuestion(ctx context.Context, level int) (*Question, error)
	// SubmitAnswer 提交答案并结算奖励
	SubmitAnswer(ctx context.Context, req AnswerRequest) (*AnswerResult, error)
	// GetEquippedSkin 返回玩家当前装备的皮肤编号
	GetEquippedSkin(ctx context.Context, playerID string) (int, error)
	// SelectSkin 装备一个已解锁的皮肤
	SelectSkin(ctx context.Context, playerID string, skin int) (*Profile, error)
}

// SkinUnlocker 可以直接解锁皮肤的服务（本地服务与开发服务器）
type SkinUnlocker interface {
	UnlockSkin(ctx context.Context, playerID string, skin int) (*Profile, error)
}
