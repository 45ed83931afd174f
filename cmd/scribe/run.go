package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	scribe "github.com/willowmere/scribe"
	"github.com/willowmere/scribe/errz"
	"github.com/willowmere/scribe/event"
	"github.com/willowmere/scribe/namespace"
	"github.com/willowmere/scribe/vm"
)

func runCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run [file]",
		Short: "Run a script",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			watch, _ := cmd.Flags().GetBool("watch")
			if !watch {
				src, err := readSource(cmd, args)
				if err != nil {
					return err
				}
				return runOnce(cmd, src)
			}
			if len(args) == 0 {
				return fmt.Errorf("--watch requires a script file")
			}
			return runWatch(cmd, args[0])
		},
	}
	cmd.Flags().StringP("code", "c", "", "script source to run")
	cmd.Flags().Bool("check", false, "type check before running")
	cmd.Flags().Bool("trace", false, "log every instruction")
	cmd.Flags().Bool("watch", false, "re-run the script whenever the file changes")
	cmd.Flags().String("events", "", "YAML file of event declarations")
	cmd.Flags().String("event", "", "event to validate the script against")
	return cmd
}

func runOnce(cmd *cobra.Command, src string) error {
	opts, err := scriptOptions(cmd)
	if err != nil {
		return err
	}
	script, err := scribe.CreateScript(src, opts...)
	if err != nil {
		var parseErr *errz.ParseError
		if errors.As(err, &parseErr) {
			fmt.Fprint(cmd.ErrOrStderr(), parseErr.FriendlyErrorMessage())
			return fmt.Errorf("script rejected")
		}
		return err
	}
	return drive(cmd.Context(), script)
}

// drive runs a script to completion, acting as a minimal scheduler: sleep
// suspensions are honored in-process. Real hosts persist the snapshot and
// resume from a delayed callback instead.
func drive(ctx context.Context, script *scribe.Script) error {
	state, err := script.Run(ctx)
	for err == nil && state == scribe.Suspended {
		susp := script.Suspension()
		logger.Debug().
			Str("script", script.ID()).
			Str("reason", susp.Reason).
			Msg("script suspended")
		if delay, ok := susp.Payload.(time.Duration); ok {
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		state, err = script.Resume(ctx, nil)
	}
	if err != nil {
		return err
	}
	logger.Debug().Str("script", script.ID()).Str("state", state.String()).Msg("script finished")
	return nil
}

func runWatch(cmd *cobra.Command, path string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()
	if err := watcher.Add(path); err != nil {
		return err
	}

	rerun := func() {
		src, err := readSource(cmd, []string{path})
		if err == nil {
			err = runOnce(cmd, src)
		}
		if err != nil {
			fmt.Fprintln(cmd.ErrOrStderr(), color.RedString("error:"), err)
		}
	}
	rerun()
	fmt.Fprintln(cmd.ErrOrStderr(), color.CyanString("watching %s", path))

	for {
		select {
		case <-cmd.Context().Done():
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if ev.Op.Has(fsnotify.Write) || ev.Op.Has(fsnotify.Create) {
				logger.Info().Str("file", ev.Name).Msg("change detected")
				rerun()
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Error().Err(err).Msg("watch error")
		}
	}
}

func scriptOptions(cmd *cobra.Command) ([]scribe.Option, error) {
	var opts []scribe.Option
	if check, _ := cmd.Flags().GetBool("check"); check {
		opts = append(opts, scribe.WithTypeCheck())
	}
	if trace, _ := cmd.Flags().GetBool("trace"); trace {
		opts = append(opts, scribe.WithObserver(vm.ObserverFunc(func(ev vm.StepEvent) bool {
			logger.Info().
				Int("ip", ev.IP).
				Int("stack", ev.StackDepth).
				Msg(ev.Instruction)
			return true
		})))
	}
	eventsFile, _ := cmd.Flags().GetString("events")
	eventName, _ := cmd.Flags().GetString("event")
	if eventName != "" {
		if eventsFile == "" {
			return nil, fmt.Errorf("--event requires --events")
		}
		events, err := event.LoadFile(eventsFile)
		if err != nil {
			return nil, err
		}
		var found *event.Event
		for _, e := range events {
			if e.Name == eventName {
				found = e
				break
			}
		}
		if found == nil {
			return nil, fmt.Errorf("event %q not declared in %s", eventName, eventsFile)
		}
		types, kinds := found.VariableTypes()
		opts = append(opts, scribe.WithVariableTypes(types))
		if len(kinds) > 0 {
			opts = append(opts, scribe.WithHostKinds(kinds, namespace.Default))
		}
	}
	return opts, nil
}
