package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/AI2HU/geodash/internal/backend"
	"github.com/AI2HU/geodash/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize geodash configuration",
	Long:  `Interactive wizard to set up the backend connection, target brand, data source and insights provider.`,
	RunE:  runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	reader := bufio.NewReader(os.Stdin)

	printHeader("🚀 Welcome to Geodash - AI Visibility Dashboard Setup")

	configPath := cfgFile
	if configPath == "" {
		configPath = config.GetConfigPath()
	}
	if config.Exists(configPath) {
		fmt.Printf("Configuration file already exists at: %s\n", configPath)
		confirmed, err := promptYesNo(reader, "Do you want to overwrite it? (y/N): ")
		if err != nil {
			return err
		}
		if !confirmed {
			fmt.Println("Setup cancelled.")
			return nil
		}
	}

	c := config.DefaultConfig()

	fmt.Println("\n📊 Backend Configuration")
	fmt.Println("------------------------")

	url, err := promptWithRetry(reader, fmt.Sprintf("Backend URL [%s]: ", c.Backend.URL), func(input string) (string, error) {
		if input == "" {
			return c.Backend.URL, nil
		}
		return validateBaseURL(input)
	})
	if err != nil {
		return err
	}
	c.Backend.URL = url

	key, err := promptOptional(reader, "Backend API key (leave empty to use $"+config.EnvAPIKey+"): ", "")
	if err != nil {
		return err
	}
	c.Backend.APIKey = key

	fmt.Println("\n🔌 Testing backend connection...")
	client := backend.New(c.Backend)
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := client.Ping(ctx); err != nil {
		fmt.Printf("%s❌ Failed to reach backend: %v%s\n", ErrorStyle, err, Reset)
		keep, perr := promptYesNo(reader, "Save the configuration anyway? (y/N): ")
		if perr != nil {
			return perr
		}
		if !keep {
			return err
		}
	} else {
		fmt.Println(FormatSuccess("✅ Backend connection successful!"))
	}

	fmt.Println("\n🎯 Brand Configuration")
	fmt.Println("----------------------")

	brand, err := promptOptional(reader, fmt.Sprintf("Target brand [%s]: ", c.Target.Brand), c.Target.Brand)
	if err != nil {
		return err
	}
	c.Target.Brand = brand

	domain, err := promptOptional(reader, fmt.Sprintf("Owned domain [%s]: ", c.Target.Domain), c.Target.Domain)
	if err != nil {
		return err
	}
	c.Target.Domain = strings.ToLower(domain)

	brands, err := promptOptional(reader, fmt.Sprintf("Brands to compare [%s]: ", strings.Join(c.Brands, ", ")), strings.Join(c.Brands, ","))
	if err != nil {
		return err
	}
	c.Brands = parseList(brands)

	fmt.Println("\n💾 Data Source")
	fmt.Println("--------------")

	src, err := promptWithRetry(reader, fmt.Sprintf("Read from backend or mirror [%s]: ", c.Source), func(input string) (string, error) {
		if input == "" {
			return c.Source, nil
		}
		return validateSource(input)
	})
	if err != nil {
		return err
	}
	c.Source = src

	schedule, err := promptWithRetry(reader, fmt.Sprintf("Mirror sync schedule [%s]: ", c.Mirror.Schedule), func(input string) (string, error) {
		if input == "" {
			return c.Mirror.Schedule, nil
		}
		return validateCronExpression(input)
	})
	if err != nil {
		return err
	}
	c.Mirror.Schedule = schedule

	fmt.Println("\n🤖 Insights")
	fmt.Println("-----------")

	provider, err := promptWithRetry(reader, fmt.Sprintf("LLM provider for insights (openai/google/none) [%s]: ", c.Insights.Provider), func(input string) (string, error) {
		if input == "" {
			return c.Insights.Provider, nil
		}
		return validateProvider(input)
	})
	if err != nil {
		return err
	}
	c.Insights.Provider = provider

	if provider != "" {
		if provider == "google" {
			c.Insights.Model = ""
		}
		model, err := promptOptional(reader, "Model (leave empty for the provider default): ", c.Insights.Model)
		if err != nil {
			return err
		}
		c.Insights.Model = model

		if provider == "openai" {
			baseURL, err := promptWithRetry(reader, "Base URL for an OpenAI compatible endpoint (leave empty for OpenAI): ", func(input string) (string, error) {
				if input == "" {
					return "", nil
				}
				return validateBaseURL(input)
			})
			if err != nil {
				return err
			}
			c.Insights.BaseURL = baseURL
		}

		apiKey, err := promptOptional(reader, "LLM API key (leave empty to use $"+config.EnvLLMAPIKey+"): ", "")
		if err != nil {
			return err
		}
		c.Insights.APIKey = apiKey
	}

	fmt.Println("\n💾 Saving configuration...")
	if err := c.Save(configPath); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}
	fmt.Printf("✅ Configuration saved to: %s\n", configPath)

	fmt.Println()
	printHeader("📋 Configuration Summary")
	fmt.Println(FormatLabelValue("Backend:", c.Backend.URL))
	fmt.Println(FormatLabelValue("API key:", maskSensitiveData(c.Backend.APIKey, "*")))
	fmt.Println(FormatLabelValue("Target:", fmt.Sprintf("%s (%s)", c.Target.Brand, c.Target.Domain)))
	fmt.Println(FormatLabelValue("Brands:", strings.Join(c.Brands, ", ")))
	fmt.Println(FormatLabelValue("Source:", c.Source))
	if c.Insights.Provider != "" {
		fmt.Println(FormatLabelValue("Insights:", c.Insights.Provider))
	}
	fmt.Println()
	fmt.Println("🎉 Setup complete! You can now use geodash.")
	fmt.Println()
	fmt.Println("Next steps:")
	fmt.Println("  1. Check the headline numbers: geodash kpis --days 30")
	fmt.Println("  2. Copy the data locally: geodash mirror sync")
	fmt.Println("  3. Serve the dashboard API: geodash serve")

	return nil
}
