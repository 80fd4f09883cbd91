package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/bizhubhq/bizhub/internal/moderation"
	"github.com/bizhubhq/bizhub/internal/service"
	"github.com/spf13/cobra"
)

var (
	submitDescription string
	submitCategory    string
	submitAddress     string
	submitPhone       string
	submitEmail       string
	submitImages      []string
)

var submitCmd = &cobra.Command{
	Use:   "submit <name>",
	Short: "Submit a new business listing",
	Long: `Submit a new business listing to the directory.

Every submission is screened by AI moderation before it is published. A
rejected submission shows the moderation reason so you can revise it.

Examples:
  bizhub submit "Mario's Pizza" -c "Food & Dining" -d "Wood-fired pizza since 1987"
  bizhub submit "Glow Spa" -c "Healthcare" --image front.jpg --image lobby.jpg`,
	Args: cobra.ExactArgs(1),
	RunE: runSubmit,
}

func init() {
	submitCmd.Flags().StringVarP(&submitDescription, "description", "d", "", "what the business does")
	submitCmd.Flags().StringVarP(&submitCategory, "category", "c", "", "directory category")
	submitCmd.Flags().StringVarP(&submitAddress, "address", "a", "", "street address")
	submitCmd.Flags().StringVarP(&submitPhone, "phone", "p", "", "phone number")
	submitCmd.Flags().StringVarP(&submitEmail, "email", "e", "", "contact email")
	submitCmd.Flags().StringSliceVar(&submitImages, "image", nil, "photo to attach (repeatable, max 5)")
}

func runSubmit(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	c, err := getCompleter(ctx)
	if err != nil {
		return err
	}

	images, err := loadImages(submitImages)
	if err != nil {
		return err
	}

	listings := service.NewListingService(dbClient, moderation.New(c, nil), nil, nil)

	business, err := listings.Submit(ctx, service.Submission{
		Name:        args[0],
		Description: submitDescription,
		Category:    submitCategory,
		Address:     submitAddress,
		Phone:       submitPhone,
		Email:       submitEmail,
		Images:      images,
	})
	if err != nil {
		var rejection *service.RejectionError
		if errors.As(err, &rejection) {
			// The moderation reason, word for word, so it can be revised.
			exitWithError("%s", rejection.Error())
		}
		return err
	}

	fmt.Printf("✓ Published %q", business.Name)
	if business.Category != "" {
		fmt.Printf(" in %s", business.Category)
	}
	fmt.Printf(" (moderation score %d)\n", business.ModerationScore)
	for _, url := range business.ImageURLs {
		fmt.Printf("  photo: %s\n", url)
	}
	return nil
}

func loadImages(paths []string) ([]service.ImageUpload, error) {
	var images []service.ImageUpload
	for _, p := range paths {
		content, err := os.ReadFile(p)
		if err != nil {
			return nil, fmt.Errorf("read image %s: %w", p, err)
		}
		images = append(images, service.ImageUpload{
			Filename:    filepath.Base(p),
			ContentType: http.DetectContentType(content),
			Content:     content,
		})
	}
	return images, nil
}
