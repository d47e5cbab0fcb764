// seed_inventory genera y carga los datos de inventario de la red.
//
// Uso:
//
//	go run ./cmd/seed_inventory generate --input hospitals.csv --output inventory_data.csv --seed 42
//	go run ./cmd/seed_inventory load --facilities hospitals.csv --inventory inventory_data.csv
//	go run ./cmd/seed_inventory token --operator op-1 --facility F-001 --role operador
//
// load y token leen la misma configuración que la API (STORE_DRIVER, DATABASE_URL, JWT_SECRET...).
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/jhoicas/swiftstock-api/internal/application/generator"
	"github.com/jhoicas/swiftstock-api/internal/domain/entity"
	"github.com/jhoicas/swiftstock-api/internal/infrastructure/csvio"
	"github.com/jhoicas/swiftstock-api/internal/infrastructure/store"
	"github.com/jhoicas/swiftstock-api/pkg/config"
	"github.com/jhoicas/swiftstock-api/pkg/jwt"
	"github.com/jhoicas/swiftstock-api/pkg/logger"
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "seed_inventory",
		Short:         "Datos sintéticos de inventario: generar, cargar y emitir tokens",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.AddCommand(generateCmd(), loadCmd(), tokenCmd())

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "seed_inventory: %v\n", err)
		os.Exit(1)
	}
}

func newLogger() *logger.Logger {
	return logger.New(logger.Config{Env: "development", Level: "info", Service: "seed_inventory", Out: os.Stderr})
}

func generateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Genera inventory_data.csv con el escenario de crisis",
		RunE: func(cmd *cobra.Command, args []string) error {
			input, _ := cmd.Flags().GetString("input")
			output, _ := cmd.Flags().GetString("output")
			seed, _ := cmd.Flags().GetUint64("seed")
			days, _ := cmd.Flags().GetInt("days")
			victims, _ := cmd.Flags().GetInt("victims")
			dateStr, _ := cmd.Flags().GetString("date")

			cfg := generator.DefaultConfig()
			cfg.Days = days
			cfg.Victims = victims
			if dateStr != "" {
				d, err := time.Parse(entity.DateLayout, dateStr)
				if err != nil {
					return fmt.Errorf("--date debe ser %s: %w", entity.DateLayout, err)
				}
				cfg.Date = d
			}
			return runGenerate(input, output, seed, cfg, newLogger())
		},
	}
	cmd.Flags().String("input", "hospitals.csv", "CSV de instalaciones")
	cmd.Flags().String("output", "inventory_data.csv", "CSV de salida")
	cmd.Flags().Uint64("seed", 0, "semilla del generador (0 = aleatoria)")
	cmd.Flags().Int("days", 1, "días de historial que terminan en --date")
	cmd.Flags().Int("victims", 3, "primeras N instalaciones en crisis")
	cmd.Flags().String("date", "", "último día generado (por defecto hoy)")
	return cmd
}

func runGenerate(input, output string, seed uint64, cfg generator.Config, log *logger.Logger) error {
	facilities, err := csvio.ReadFacilitiesFile(input)
	if err != nil {
		return err
	}
	log.Info().Int("facilities", len(facilities)).Str("input", input).Msg("instalaciones leídas")

	gen := generator.New(cfg, nil, nil)
	if seed != 0 {
		gen = generator.NewSeeded(cfg, seed)
	}
	records, scenario, err := gen.Generate(facilities)
	if err != nil {
		return fmt.Errorf("generar: %w", err)
	}

	for _, p := range scenario.Pairs {
		log.Info().
			Str("victim", p.Victim.Name).
			Str("savior", p.Savior.Name).
			Float64("distance_km", p.DistanceKm).
			Str("item", scenario.Item).
			Msg("escenario de crisis")
	}

	if err := csvio.WriteFileAtomic(output, func(w io.Writer) error {
		return csvio.WriteInventory(w, records)
	}); err != nil {
		return err
	}
	log.Info().Int("records", len(records)).Str("output", output).Msg("inventario generado")
	return nil
}

func loadCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "load",
		Short: "Carga instalaciones e inventario en el almacén configurado",
		RunE: func(cmd *cobra.Command, args []string) error {
			facPath, _ := cmd.Flags().GetString("facilities")
			invPath, _ := cmd.Flags().GetString("inventory")

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			return runLoad(cmd.Context(), cfg, facPath, invPath, newLogger())
		},
	}
	cmd.Flags().String("facilities", "hospitals.csv", "CSV de instalaciones")
	cmd.Flags().String("inventory", "inventory_data.csv", "CSV de inventario")
	return cmd
}

func runLoad(ctx context.Context, cfg *config.Config, facPath, invPath string, log *logger.Logger) error {
	// Validar ambos archivos antes de tocar el almacén.
	facilities, err := csvio.ReadFacilitiesFile(facPath)
	if err != nil {
		return err
	}
	records, err := csvio.ReadInventoryFile(invPath)
	if err != nil {
		return err
	}

	st, err := store.Open(ctx, cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	if err := st.Loader.EnsureSchema(ctx); err != nil {
		return err
	}
	nf, err := st.Loader.UpsertFacilities(ctx, facilities)
	if err != nil {
		return err
	}
	nr, err := st.Loader.ImportRecords(ctx, records)
	if err != nil {
		return err
	}
	log.Info().Str("store", st.Driver).Int("facilities", nf).Int("records", nr).Msg("carga completada")
	return nil
}

func tokenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Emite un JWT de operador firmado con JWT_SECRET",
		RunE: func(cmd *cobra.Command, args []string) error {
			operator, _ := cmd.Flags().GetString("operator")
			facility, _ := cmd.Flags().GetString("facility")
			role, _ := cmd.Flags().GetString("role")
			if operator == "" {
				return fmt.Errorf("--operator es obligatorio")
			}
			if !entity.ValidRole(role) {
				return fmt.Errorf("--role %q inválido (admin|logistica|operador)", role)
			}

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			tok, err := jwt.Generate(cfg.JWT.Secret, operator, facility, role, cfg.JWT.Issuer, cfg.JWT.Expiration)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), tok)
			return nil
		},
	}
	cmd.Flags().String("operator", "", "ID del operador")
	cmd.Flags().String("facility", "", "instalación del operador (opcional)")
	cmd.Flags().String("role", entity.RoleOperador, "admin | logistica | operador")
	return cmd
}
