package player

import (
	"fmt"
	"math/rand"
)

// 运算类型
const (
	OperationAddition       = "addition"
	OperationSubtraction    = "subtraction"
	OperationMultiplication = "multiplication"
	OperationDivision       = "division"
)

// randInt 返回 [lo, hi] 内的随机整数（hi < lo 时返回 lo）
func randInt(rng *rand.Rand, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + rng.Intn(hi-lo+1)
}

// GenerateQuestion 按难度等级生成题目
//
// 难度分段:
//   - 1-5:   加法
//   - 6-10:  减法（结果为正）
//   - 11-15: 乘法
//   - 16+:   除法（整除）
//
// 选项为三个互不相同的正整数（含正确答案），顺序随机。
func GenerateQuestion(rng *rand.Rand, level int) (*Question, error) {
	if level < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidLevel, level)
	}

	var (
		num1, num2, correct int
		text, op            string
		offsets             []int
	)

	switch {
	case level <= 5:
		num1 = randInt(rng, level*2, level*5+10)
		num2 = randInt(rng, level, level*3+5)
		correct = num1 + num2
		text = fmt.Sprintf("%d + %d", num1, num2)
		op = OperationAddition
		offsets = []int{-3, -2, -1, 1, 2, 3}
	case level <= 10:
		num1 = randInt(rng, level*3, level*5+20)
		num2 = randInt(rng, level, num1-1)
		correct = num1 - num2
		text = fmt.Sprintf("%d - %d", num1, num2)
		op = OperationSubtraction
		offsets = []int{-5, -3, -1, 1, 3, 5}
	case level <= 15:
		num1 = randInt(rng, 2, level-5)
		num2 = randInt(rng, 2, min(12, level-3))
		correct = num1 * num2
		text = fmt.Sprintf("%d × %d", num1, num2)
		op = OperationMultiplication
		offsets = []int{-num2, -1, 1, num2}
	default:
		num2 = randInt(rng, 2, min(12, level-10))
		result := randInt(rng, 2, level-5)
		num1 = num2 * result
		correct = result
		text = fmt.Sprintf("%d ÷ %d", num1, num2)
		op = OperationDivision
		offsets = []int{-2, -1, 1, 2}
	}

	options := []int{correct}
	for len(options) < 3 {
		wrong := correct + offsets[rng.Intn(len(offsets))]
		if wrong > 0 && !containsInt(options, wrong) {
			options = append(options, wrong)
		}
	}
	rng.Shuffle(len(options), func(i, j int) {
		options[i], options[j] = options[j], options[i]
	})

	return &Question{
		Question:      text,
		CorrectAnswer: correct,
		Options:       options,
		Level:         level,
		Operation:     op,
	}, nil
}

func containsInt(list []int, v int) bool {
	for _, x := range list {
		if x == v {
			return true
		}
	}
	return false
}
