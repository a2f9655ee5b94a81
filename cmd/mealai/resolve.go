package main

import (
	"errors"
	"fmt"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"github.com/vbonduro/mealai/internal/domain"
	"github.com/vbonduro/mealai/internal/inference"
	"github.com/vbonduro/mealai/internal/resolve"
)

var resolveCmd = &cobra.Command{
	Use:   "resolve",
	Short: "Resolve one food input into a nutrition estimate",
	Long: `Resolve runs the pipeline for exactly one input: --text, --voice, --barcode,
or up to three --image files of the same meal. With --save the result is also
added to history, using the first image as its thumbnail.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		in, err := inputFromFlags(cmd)
		if err != nil {
			return err
		}
		format, _ := cmd.Flags().GetString("output")
		save, _ := cmd.Flags().GetBool("save")

		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer a.close()

		if !a.cfg.FoodSearchEnabled {
			return errors.New("food search is disabled (food_search_enabled=false)")
		}

		result, err := a.service.Resolve(cmd.Context(), in)
		if err != nil {
			return err
		}

		if save {
			var thumbnail *domain.Image
			if images, ok := in.(resolve.Images); ok {
				thumbnail = &images[0]
			}
			entry, err := a.service.SaveHistory(cmd.Context(), *result, thumbnail)
			if err != nil {
				return err
			}
			a.logger.Info("saved to history", "id", entry.ID)
		}

		return printValue(cmd.OutOrStdout(), format, result)
	},
}

func init() {
	resolveCmd.Flags().String("text", "", "typed food description")
	resolveCmd.Flags().String("voice", "", "speech transcript")
	resolveCmd.Flags().String("barcode", "", "product barcode")
	resolveCmd.Flags().StringArray("image", nil, "photo of the meal (repeatable, at most 3)")
	resolveCmd.Flags().StringP("output", "o", "json", "output format: json or yaml")
	resolveCmd.Flags().Bool("save", false, "add the result to history")
	resolveCmd.MarkFlagsMutuallyExclusive("text", "voice", "barcode", "image")
	resolveCmd.MarkFlagsOneRequired("text", "voice", "barcode", "image")

	rootCmd.AddCommand(resolveCmd)
}

func inputFromFlags(cmd *cobra.Command) (resolve.Input, error) {
	flags := cmd.Flags()
	if v, _ := flags.GetString("text"); v != "" {
		return resolve.Text(v), nil
	}
	if v, _ := flags.GetString("voice"); v != "" {
		return resolve.Voice(v), nil
	}
	if v, _ := flags.GetString("barcode"); v != "" {
		return resolve.Barcode(v), nil
	}

	paths, _ := flags.GetStringArray("image")
	if len(paths) == 0 || len(paths) > resolve.MaxImages {
		return nil, fmt.Errorf("%w: expected 1 to %d images, got %d", domain.ErrInvalidInput, resolve.MaxImages, len(paths))
	}
	images := make(resolve.Images, 0, len(paths))
	for _, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			return nil, fmt.Errorf("failed to read image: %w", err)
		}
		images = append(images, domain.Image{Data: data, MimeType: inference.NormaliseMIME(http.DetectContentType(data))})
	}
	return images, nil
}
