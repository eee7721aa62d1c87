package deck

import "git.home.luguber.info/inful/slidedeck/internal/registry"

func labRegistry() *registry.Registry {
	return &registry.Registry{
		Title: "Lab Meeting",
		Topics: []registry.Topic{
			{ID: "introduction", Name: "Introduction", Order: 1},
			{ID: "results", Name: "Results", Order: 2},
		},
		Slides: []registry.Slide{
			{
				ID:      "2024-01-10_overview",
				Topic:   "introduction",
				Title:   "Overview",
				Content: "Welcome to the **project**.\n",
				Created: "2024-01-10",
			},
			{
				ID:      "2024-02-01_accuracy",
				Topic:   "results",
				Title:   "Accuracy",
				Figure:  "figures/results/accuracy.png",
				Caption: "Model accuracy per epoch.",
				Notes:   "Mention the plateau.",
				Created: "2024-02-01",
				Tags:    []string{"model"},
			},
			{
				ID:          "2024-03-05_loss_curve",
				Topic:       "results",
				Title:       "Loss Curve",
				Figure:      "figures/results/loss_curve.png",
				Description: "Training loss.",
				Created:     "2024-03-05",
			},
			{
				ID:      "2024-02-20_raw_data",
				Topic:   "appendix_data",
				Title:   "Raw Data",
				Figure:  "figures/appendix_data/raw.png",
				Created: "2024-02-20",
			},
		},
	}
}
