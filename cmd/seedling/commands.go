package main

import (
	"errors"
	"fmt"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/osse101/seedling/internal/domain"
	"github.com/osse101/seedling/internal/mirror"
)

var errSyncFailed = errors.New("could not fetch state from server")

func (c *cli) newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the locally cached seedling",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := c.open()
			if err != nil {
				return err
			}
			st := s.Mirror().Read()
			return c.print(cmd, st, describeState(st))
		},
	}
}

func (c *cli) newSyncCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Replace the local cache with the server's state",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := c.open()
			if err != nil {
				return err
			}
			if !s.SyncFromServer(cmd.Context()) {
				return fmt.Errorf("%w at %s", errSyncFailed, c.opts.server)
			}
			st := s.Mirror().Read()
			return c.print(cmd, st, "synced: "+describeState(st))
		},
	}
}

func (c *cli) newWaterCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "water",
		Short: "Water the seedling (server first, local cache if offline)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := c.open()
			if err != nil {
				return err
			}
			res, err := s.WaterRemoteFirst(cmd.Context())
			if err != nil {
				return err
			}
			return c.print(cmd, res, describeWater(res))
		},
	}
}

func (c *cli) newHarvestCmd() *cobra.Command {
	var password string
	cmd := &cobra.Command{
		Use:   "harvest",
		Short: "Harvest a ripe seedling (admin password required)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := c.open()
			if err != nil {
				return err
			}
			res, err := s.HarvestRemoteFirst(cmd.Context(), password)
			if err != nil {
				return err
			}
			return c.print(cmd, res, describeHarvest(res))
		},
	}
	cmd.Flags().StringVar(&password, "pw", "", "admin password")
	_ = cmd.MarkFlagRequired("pw")
	return cmd
}

func (c *cli) newResetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Clear the local cache (the server is not touched)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := c.open()
			if err != nil {
				return err
			}
			st, err := s.Mirror().Reset()
			if err != nil {
				return err
			}
			return c.print(cmd, st, "local cache reset")
		},
	}
}

func (c *cli) newCanWaterCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "can-water",
		Short: "Report whether the local cache allows watering today",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := c.open()
			if err != nil {
				return err
			}
			ok := s.Mirror().CanWaterToday()
			human := "no"
			if ok {
				human = "yes"
			}
			return c.print(cmd, map[string]bool{"canWater": ok}, human)
		},
	}
}

func (c *cli) newWatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Follow server broadcasts and keep the local cache current",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := c.open()
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			w := mirror.NewWatcher(c.opts.server, s.Mirror(), func(eventType string, st domain.TreeState) {
				_ = c.print(cmd, st, eventType+": "+describeState(st))
			})
			w.Start(ctx)
			<-ctx.Done()
			w.Stop()
			return nil
		},
	}
}

func (c *cli) newSecretCmd() *cobra.Command {
	secret := &cobra.Command{
		Use:   "secret",
		Short: "Manage the admin secret that allows offline harvests",
	}

	secret.AddCommand(
		&cobra.Command{
			Use:   "set <secret>",
			Short: "Store the admin secret in the OS keyring",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := c.deps.secrets.Set(args[0]); err != nil {
					return err
				}
				_, err := fmt.Fprintln(cmd.OutOrStdout(), "admin secret stored")
				return err
			},
		},
		&cobra.Command{
			Use:   "clear",
			Short: "Remove the admin secret from the OS keyring",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := c.deps.secrets.Clear(); err != nil {
					return err
				}
				_, err := fmt.Fprintln(cmd.OutOrStdout(), "admin secret cleared")
				return err
			},
		},
	)
	return secret
}

func describeState(st domain.TreeState) string {
	last := "never"
	if st.LastWatered != nil {
		last = st.LastWatered.String()
	}
	return fmt.Sprintf("%s %d/%d %s, last watered %s, harvests %d",
		st.Phase(), st.WateredCount, domain.HarvestThreshold, gauge(st.WateredCount), last, st.HarvestCount)
}

func describeWater(res domain.WaterResult) string {
	switch {
	case !res.Allowed && res.Reason == domain.ReasonNeedHarvest:
		return fmt.Sprintf("the seedling is ripe (%d/%d), harvest it first", res.WaterCount, domain.HarvestThreshold)
	case !res.Allowed:
		return fmt.Sprintf("already watered today (%d/%d)", res.WaterCount, domain.HarvestThreshold)
	case res.ReadyForHarvest:
		return fmt.Sprintf("watered %d/%d, ready for harvest", res.WaterCount, domain.HarvestThreshold)
	default:
		return fmt.Sprintf("watered %d/%d", res.WaterCount, domain.HarvestThreshold)
	}
}

func describeHarvest(res domain.HarvestResult) string {
	if res.OK {
		return fmt.Sprintf("harvested, %d so far", res.HarvestCount)
	}
	return fmt.Sprintf("harvest failed: %s", res.Message)
}

func gauge(count int) string {
	count = max(0, min(count, domain.HarvestThreshold))
	return "[" + strings.Repeat("#", count) + strings.Repeat(".", domain.HarvestThreshold-count) + "]"
}
