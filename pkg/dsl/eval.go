// Package dsl 提供基于 CEL (Common Expression Language) 的候选表达式求值，
// 用于配置化的过滤规则（filter.expr 节点）。
package dsl

import (
	"fmt"
	"sync"

	"github.com/google/cel-go/cel"

	"github.com/customer360/rankkit/core"
)

var (
	// celEnv 是全局的 CEL 环境，线程安全，可复用
	celEnv     *cel.Env
	celEnvOnce sync.Once
)

func initCELEnv() (*cel.Env, error) {
	return cel.NewEnv(
		cel.Variable("item", cel.DynType),
		cel.Variable("label", cel.DynType),
		cel.Variable("rctx", cel.DynType),
	)
}

func getCELEnv() (*cel.Env, error) {
	var err error
	celEnvOnce.Do(func() {
		celEnv, err = initCELEnv()
	})
	return celEnv, err
}

// Eval 对单个候选执行 CEL 布尔表达式。
//
// 表达式语法（CEL 标准语法）：
//   - 基础：label.recall_source == "hot" / label.data_warning != null
//   - 数值：item.score > 70.0 / item.price < 5000.0
//   - 逻辑：item.category == "dive" && item.rating >= 4.0
//   - 包含：label.recall_source.contains("hot")
//
// 注意：CEL 访问不存在的 key 会报错，用 label.key != null 检查存在性。
type Eval struct {
	item *core.Item
	rctx *core.RecommendContext
	env  *cel.Env
}

// NewEval 创建一个新的表达式求值器。
func NewEval(item *core.Item, rctx *core.RecommendContext) *Eval {
	env, _ := getCELEnv()
	return &Eval{
		item: item,
		rctx: rctx,
		env:  env,
	}
}

// Evaluate 编译并执行表达式，返回布尔结果。空表达式返回 true。
func (e *Eval) Evaluate(expr string) (bool, error) {
	if expr == "" {
		return true, nil
	}
	if e.env == nil {
		return false, fmt.Errorf("cel env not initialized")
	}

	ast, issues := e.env.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return false, fmt.Errorf("compile error: %v", issues.Err())
	}

	prg, err := e.env.Program(ast)
	if err != nil {
		return false, fmt.Errorf("program error: %v", err)
	}

	out, _, err := prg.Eval(e.buildInput())
	if err != nil {
		return false, fmt.Errorf("eval error: %v", err)
	}

	result, ok := out.Value().(bool)
	if !ok {
		return false, fmt.Errorf("expression must return boolean, got %T", out.Value())
	}
	return result, nil
}

// buildInput 把候选和上下文展平成 CEL 输入。
// Meta 中的标量字段（name/brand/category/price/rating 等）提升为 item 的顶层键，
// 让表达式可以写 item.brand 而不是 item.meta.brand。
func (e *Eval) buildInput() map[string]interface{} {
	labelAccessor := make(map[string]interface{})
	item := map[string]interface{}{}
	if e.item != nil {
		for k, v := range e.item.Labels {
			labelAccessor[k] = v.Value
		}
		for k, v := range e.item.Meta {
			switch v.(type) {
			case string, bool, int, int32, int64, float32, float64:
				item[k] = v
			}
		}
		item["id"] = e.item.ID
		item["score"] = e.item.FinalScore()
		item["base_score"] = e.item.BaseScore
		item["context_boost"] = e.item.ContextBoost
	}

	rctx := map[string]interface{}{}
	if e.rctx != nil {
		rctx["customer_id"] = e.rctx.CustomerID
		rctx["scene"] = e.rctx.Scene
		rctx["params"] = e.rctx.Params
	}

	return map[string]interface{}{
		"item":  item,
		"label": labelAccessor,
		"rctx":  rctx,
	}
}
