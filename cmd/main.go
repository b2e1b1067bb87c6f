// 指示: miu200521358
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/miu200521358/mu_bodyscan/pkg/adapter/io_model/skeleton"
	"github.com/miu200521358/mu_bodyscan/pkg/adapter/mpresenter/messages"
	"github.com/miu200521358/mu_bodyscan/pkg/adapter/shader"
	"github.com/miu200521358/mu_bodyscan/pkg/domain/model"
	"github.com/miu200521358/mu_bodyscan/pkg/domain/region"
	"github.com/miu200521358/mu_bodyscan/pkg/infra/config"
	"github.com/miu200521358/mu_bodyscan/pkg/infra/controller/api"
	"github.com/miu200521358/mu_bodyscan/pkg/infra/host"
	"github.com/miu200521358/mu_bodyscan/pkg/infra/logging"
	"github.com/miu200521358/mu_bodyscan/pkg/infra/metrics"
	"github.com/miu200521358/mu_bodyscan/pkg/usecase/minteractor"
	"github.com/miu200521358/mu_bodyscan/pkg/usecase/port/moutput"
)

const simulateFrameRate = 60

// simulateOptions は simulate サブコマンドの引数を保持する。
type simulateOptions struct {
	variant     string
	clickJoint  string
	scanSeconds float64
	severity    int
	tags        []string
	note        string
}

// main は人体スキャナのCLIを実行する。
func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run はCLI処理全体を実行する。
func run(args []string, out io.Writer, errOut io.Writer) error {
	root := newRootCmd(out)
	root.SetArgs(args)
	root.SetOut(out)
	root.SetErr(errOut)
	return root.Execute()
}

func newRootCmd(out io.Writer) *cobra.Command {
	root := &cobra.Command{
		Use:           "mu_bodyscan",
		Short:         messages.HelpRootShort,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newResolveCmd(out))
	root.AddCommand(newSimulateCmd(out))
	root.AddCommand(newServeCmd())
	return root
}

func newResolveCmd(out io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "resolve <joint>...",
		Short: messages.HelpResolveShort,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			resolver := minteractor.NewBoneNameResolver(region.Default())
			fmt.Fprintf(out, messages.OutputResolveLine, messages.LabelJoint, messages.LabelRegion, messages.LabelSource)
			for _, joint := range args {
				resolution := resolver.ResolveWithSource(joint)
				regionLabel := messages.MessageRegionNone
				if resolution.Found() {
					regionLabel = resolution.RegionID.String()
				}
				fmt.Fprintf(out, messages.OutputResolveLine, joint, regionLabel, resolution.Source)
			}
			return nil
		},
	}
}

func newSimulateCmd(out io.Writer) *cobra.Command {
	opts := simulateOptions{}
	cmd := &cobra.Command{
		Use:   "simulate",
		Short: messages.HelpSimulateShort,
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return simulate(opts, out)
		},
	}
	cmd.Flags().StringVar(&opts.variant, "variant", string(model.VariantMale), "モデルのバリアント (male / female)")
	cmd.Flags().StringVar(&opts.clickJoint, "click-joint", "", "クリックするジョイント名")
	cmd.Flags().Float64Var(&opts.scanSeconds, "scan-seconds", 0, "スキャンを進める秒数。0 はスキャンしない")
	cmd.Flags().IntVar(&opts.severity, "severity", 0, "記録する症状の重症度 (1-5)。0 は記録しない")
	cmd.Flags().StringSliceVar(&opts.tags, "tag", nil, "症状タグ")
	cmd.Flags().StringVar(&opts.note, "note", "", "症状の自由記述")
	return cmd
}

// simulate はヘッドレスでクリック・スキャン・症状記録を再生する。
func simulate(opts simulateOptions, out io.Writer) error {
	if strings.TrimSpace(opts.clickJoint) == "" {
		return errors.New(messages.MessageJointRequired)
	}

	uc := minteractor.NewBodyScanUsecase(minteractor.BodyScanUsecaseDeps{
		DefaultVariant: model.VariantMale,
		SkeletonSource: skeleton.NewPresetRepository(),
	})
	if err := uc.LoadVariant(opts.variant); err != nil {
		if errors.Is(err, minteractor.ErrUnknownVariant) {
			return fmt.Errorf(messages.MessageVariantInvalid, opts.variant)
		}
		return err
	}
	uc.BindSurfaces([]moutput.IParameterSink{shader.NewUniformBlock()})

	joint, ok := uc.State().Skeleton().GetByName(opts.clickJoint)
	if !ok {
		return fmt.Errorf(messages.MessageJointNotFound, opts.clickJoint)
	}
	outcome := uc.HandleClick([]minteractor.Intersection{{Point: joint.Position, Distance: 1}})
	selected := uc.State().SelectedRegion()
	selectedLabel := messages.MessageRegionNone
	if found, ok := uc.Catalog().Lookup(selected); ok {
		selectedLabel = found.DisplayName
	}
	fmt.Fprintf(out, messages.OutputSelectedLine, selected.String(), selectedLabel)

	if opts.scanSeconds > 0 {
		uc.StartScan()
		frames := int(opts.scanSeconds * simulateFrameRate)
		for i := 0; i < frames; i++ {
			uc.Frame(1.0 / simulateFrameRate)
		}
		fmt.Fprintf(out, messages.OutputScanLine, uc.State().ScanProgress(), uc.State().ScanY())
	}

	if opts.severity > 0 {
		if !outcome.Resolved {
			return fmt.Errorf(messages.MessageJointNotFound, opts.clickJoint)
		}
		record, err := uc.AddSymptom(minteractor.SymptomInput{
			RegionID: selected,
			Severity: opts.severity,
			Tags:     opts.tags,
			Note:     opts.note,
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(out, messages.OutputSymptomLine, record.RegionID, int(record.Severity), record.Severity.Label(), record.Description)
	}
	return nil
}

func newServeCmd() *cobra.Command {
	var configPath string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: messages.HelpServeShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return serve(ctx, configPath)
		},
	}
	cmd.Flags().StringVar(&configPath, "config", "bodyscan.yaml", "設定ファイルパス")
	return cmd
}

// serve は状態ループとHTTP境界を ctx の終了まで動かす。
func serve(ctx context.Context, configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("%s: %w", messages.MessageConfigLoadError, err)
	}
	logger, err := logging.New(cfg.Log)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	source, err := skeleton.NewVariantRepository(cfg.Assets, logger)
	if err != nil {
		return err
	}
	scanMetrics := metrics.New()
	catalog := region.Default()
	uc := minteractor.NewBodyScanUsecase(minteractor.BodyScanUsecaseDeps{
		Catalog:          catalog,
		Settings:         cfg.UsecaseSettings(),
		DefaultVariant:   cfg.DefaultVariant(),
		SkeletonSource:   source,
		Metrics:          scanMetrics,
		ProgressReporter: scanLogReporter{logger: logger},
		Logger:           logger,
	})
	uc.BindSurfaces([]moutput.IParameterSink{shader.NewUniformBlock()})

	loop := host.NewLoop(uc, cfg.FrameInterval(), logger)
	server := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           api.New(loop, catalog, scanMetrics.Handler(), logger).Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return loop.Run(gctx)
	})
	g.Go(func() error {
		if _, err := loop.LoadVariant(gctx, string(cfg.DefaultVariant())); err != nil {
			logger.Warn(messages.LogSkeletonLoadFail, zap.Error(err))
		}
		return nil
	})
	g.Go(func() error {
		logger.Info(messages.LogServeStarted, zap.String("addr", cfg.Server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		err := server.Shutdown(shutdownCtx)
		logger.Info(messages.LogServeStopped)
		return err
	})
	return g.Wait()
}

// scanLogReporter はスキャン進捗の開始と完了をログへ出力する。
type scanLogReporter struct {
	logger *zap.Logger
}

func (r scanLogReporter) ReportScanProgress(event minteractor.ScanProgressEvent) {
	if event.Type == minteractor.ScanProgressEventTypeAdvanced {
		return
	}
	r.logger.Info(messages.LabelScan,
		zap.String("event", string(event.Type)),
		zap.Float64("progress", event.Progress),
		zap.Float64("scanY", event.ScanY))
}
