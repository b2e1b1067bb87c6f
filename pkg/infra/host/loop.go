// 指示: miu200521358
// Package host はユースケースを単一ゴルーチンで所有する状態ループを提供する。
package host

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/miu200521358/mu_bodyscan/pkg/adapter/mpresenter/messages"
	"github.com/miu200521358/mu_bodyscan/pkg/domain/model"
	"github.com/miu200521358/mu_bodyscan/pkg/usecase/minteractor"
)

const commandBufferSize = 64

// ErrLoopStopped は停止済みの状態ループへ操作を送った場合のエラー。
var ErrLoopStopped = errors.New("状態ループは停止しています")

// Command は状態ループ上で実行する操作。
type Command func(uc *minteractor.BodyScanUsecase) error

// Loop はフレーム更新と操作を同じゴルーチンで直列に実行する。
type Loop struct {
	usecase  *minteractor.BodyScanUsecase
	interval time.Duration
	logger   *zap.Logger
	commands chan Command
	done     chan struct{}
}

// NewLoop は状態ループを生成する。interval はフレーム間隔。
func NewLoop(usecase *minteractor.BodyScanUsecase, interval time.Duration, logger *zap.Logger) *Loop {
	if logger == nil {
		logger = zap.NewNop()
	}
	if interval <= 0 {
		interval = time.Second / 60
	}
	return &Loop{
		usecase:  usecase,
		interval: interval,
		logger:   logger,
		commands: make(chan Command, commandBufferSize),
		done:     make(chan struct{}),
	}
}

// Run は ctx が終了するまでループを回す。1つの Loop に対して1回だけ呼び出す。
func (l *Loop) Run(ctx context.Context) error {
	defer close(l.done)

	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()

	l.logger.Info(messages.LogLoopStarted, zap.Duration("interval", l.interval))
	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			l.logger.Info(messages.LogLoopStopped)
			return nil
		case command := <-l.commands:
			command(l.usecase)
		case now := <-ticker.C:
			l.usecase.Frame(now.Sub(last).Seconds())
			last = now
		}
	}
}

// Done はループ終了時に閉じられるチャネルを返す。
func (l *Loop) Done() <-chan struct{} {
	return l.done
}

// Do は fn をループ上で実行し、その結果を待つ。
func (l *Loop) Do(ctx context.Context, fn Command) error {
	result := make(chan error, 1)
	command := func(uc *minteractor.BodyScanUsecase) error {
		err := fn(uc)
		result <- err
		return err
	}

	select {
	case l.commands <- command:
	case <-l.done:
		return ErrLoopStopped
	case <-ctx.Done():
		return ctx.Err()
	}

	select {
	case err := <-result:
		return err
	case <-l.done:
		// 停止直前に実行済みの場合は結果を優先する。
		select {
		case err := <-result:
			return err
		default:
			return ErrLoopStopped
		}
	case <-ctx.Done():
		return ctx.Err()
	}
}

// LoadVariant はループ上でバリアントを切り替え、呼び出し元ゴルーチンでスケルトンを読み込み、
// 読み込み結果をループ上で公開する。読み込み中もフレーム更新は止まらない。
func (l *Loop) LoadVariant(ctx context.Context, name string) (model.Variant, error) {
	var variant model.Variant
	if err := l.Do(ctx, func(uc *minteractor.BodyScanUsecase) error {
		switched, err := uc.SwitchVariant(name)
		variant = switched
		return err
	}); err != nil {
		return "", err
	}

	skeleton, err := l.usecase.LoadSkeleton(variant)
	if err != nil {
		l.logger.Warn(messages.LogSkeletonLoadFail, zap.String("variant", string(variant)), zap.Error(err))
		return variant, err
	}

	if err := l.Do(ctx, func(uc *minteractor.BodyScanUsecase) error {
		uc.PublishSkeleton(variant, skeleton)
		return nil
	}); err != nil {
		return variant, err
	}
	return variant, nil
}
