package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aliskhannn/flipquiz-bot/internal/domain/entities"
	"github.com/aliskhannn/flipquiz-bot/internal/service"
)

var coursesCmd = &cobra.Command{
	Use:   "courses",
	Short: "List the playable courses and their difficulties",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, lg, questions, cleanup, err := setup(cmd.Context())
		if err != nil {
			return err
		}
		defer cleanup()

		games := service.NewGameService(questions, cfg.Game.Settings(), lg)

		courses, err := games.Courses()
		if err != nil {
			return err
		}
		if len(courses) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No playable courses.")
			return nil
		}

		for _, c := range courses {
			ds, err := games.Difficulties(c)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", c, joinDifficulties(ds))
		}
		return nil
	},
}

func joinDifficulties(ds []entities.Difficulty) string {
	names := make([]string, len(ds))
	for i, d := range ds {
		names[i] = d.String()
	}
	return strings.Join(names, ", ")
}
