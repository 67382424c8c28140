package main

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/OkoraHeeke/sikora-digital-showroom-sub001/internal/app"
	"github.com/spf13/cobra"
)

func resolveCommand(env *environment) *cobra.Command {
	return &cobra.Command{
		Use:   "resolve <measure-point-id>",
		Short: "Print the candidate products for a measure point",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return withServices(env, cmd, func(ctx context.Context, services app.Services) (any, error) {
				return services.Resolver.Resolve(ctx, id)
			})
		},
	}
}

func sceneCommand(env *environment) *cobra.Command {
	return &cobra.Command{
		Use:   "scene <scene-id>",
		Short: "Print the assembled descriptor for a scene",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return withServices(env, cmd, func(ctx context.Context, services app.Services) (any, error) {
				return services.Scenes.Assemble(ctx, id)
			})
		},
	}
}

func productCommand(env *environment) *cobra.Command {
	return &cobra.Command{
		Use:   "product <name>",
		Short: "Print a product with its details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withServices(env, cmd, func(ctx context.Context, services app.Services) (any, error) {
				return services.Products.Assemble(ctx, args[0])
			})
		},
	}
}

func parseID(arg string) (int, error) {
	id, err := strconv.Atoi(arg)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q: must be an integer", arg)
	}
	return id, nil
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
