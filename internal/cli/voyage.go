package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/rl1809/harbor/internal/adapter/manifest"
	"github.com/rl1809/harbor/internal/adapter/storage"
	"github.com/rl1809/harbor/internal/config"
	"github.com/rl1809/harbor/internal/core/domain"
	"github.com/rl1809/harbor/internal/core/service"
)

func Execute() {
	cmd := NewRootCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func NewRootCmd() *cobra.Command {
	var (
		manifestPath string
		spec         manifest.VesselSpec
		dismiss      int
		debug        bool
	)

	cmd := &cobra.Command{
		Use:          "voyage",
		Short:        "Put vessels through their speed drills and print the bridge log",
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			specs := []manifest.VesselSpec{spec}
			if manifestPath != "" {
				m, err := manifest.Load(manifestPath)
				if err != nil {
					return err
				}
				specs = m.Vessels
			}

			level := "warn"
			if debug {
				level = "debug"
			}
			logger := config.NewLogger(config.LogConfig{Level: level, Format: "text"}, cmd.ErrOrStderr())

			store := storage.NewMemoryAdapter()
			svc := service.NewVesselService(store, store, 64, logger)
			done := make(chan struct{})
			go func() {
				defer close(done)
				service.RunLogWorker(0, svc.LogQueue(), store, logger)
			}()
			defer func() {
				svc.Close()
				<-done
			}()

			for _, s := range specs {
				if err := sail(cmd.Context(), svc, cmd.OutOrStdout(), s, dismiss); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&manifestPath, "manifest", "m", "", "YAML file listing the vessels to sail")
	cmd.Flags().StringVar(&spec.Name, "name", "S.S. Minnow", "vessel name when no manifest is given")
	cmd.Flags().StringSliceVar(&spec.Crew, "crew", []string{"The Skipper", "Gilligan", "Mary-anne"}, "crew roster in boarding order")
	cmd.Flags().Float64Var(&spec.MaxSpeed, "max-speed", 25.0, "maximum rated speed in knots")
	cmd.Flags().IntVar(&dismiss, "dismiss", 1, "zero-based roster position to dismiss after the first roll call")
	cmd.Flags().BoolVar(&debug, "debug", false, "log service activity to stderr")

	return cmd
}

// sail runs one vessel through full speed, full stop, half speed, a roll
// call, a dismissal and a second roll call.
func sail(ctx context.Context, svc *service.VesselService, out io.Writer, spec manifest.VesselSpec, dismiss int) error {
	v, err := svc.Commission(ctx, spec.Name, spec.Crew, spec.MaxSpeed)
	if err != nil {
		return fmt.Errorf("commission %s: %w", spec.Name, err)
	}

	fmt.Fprintf(out, "== %s ==\n", v.Name())

	for _, order := range []domain.SpeedOrder{domain.OrderFullSpeed, domain.OrderFullStop, domain.OrderHalfSpeed} {
		report, err := svc.Command(ctx, "", v.ID, order)
		if err != nil {
			return fmt.Errorf("%s %s: %w", v.Name(), order, err)
		}
		fmt.Fprintln(out, report)
	}

	if err := printRollCall(ctx, svc, out, v.ID); err != nil {
		return err
	}

	name, err := svc.DismissCrew(ctx, v.ID, dismiss)
	switch {
	case errors.Is(err, domain.ErrCrewPositionOutOfRange):
		fmt.Fprintf(out, "No crew member at position %d.\n", dismiss)
	case err != nil:
		return fmt.Errorf("%s dismiss: %w", v.Name(), err)
	default:
		fmt.Fprintf(out, "%s has left the ship.\n", name)
	}

	return printRollCall(ctx, svc, out, v.ID)
}

func printRollCall(ctx context.Context, svc *service.VesselService, out io.Writer, id string) error {
	lines, err := svc.RollCall(ctx, id)
	if err != nil {
		return fmt.Errorf("roll call: %w", err)
	}
	for _, line := range lines {
		fmt.Fprintln(out, line)
	}
	return nil
}
