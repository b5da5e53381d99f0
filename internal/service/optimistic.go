package service

import "context"

// Optimistic 乐观更新的通用骨架：先落预测值，调用成功用服务端权威值对账，
// 失败则精确回滚到动作前的快照。
type Optimistic[T any] struct {
	Get func() T
	Set func(T)
}

// Run predict 基于当前值计算预测值；call 返回权威值。
// 并发调用互相竞争时，后落地的 call 结果胜出（last-write-wins）。
func (o Optimistic[T]) Run(ctx context.Context, predict func(T) T, call func(context.Context) (T, error)) error {
	before := o.Get()
	o.Set(predict(before))

	authoritative, err := call(ctx)
	if err != nil {
		o.Set(before)
		return err
	}

	o.Set(authoritative)
	return nil
}
