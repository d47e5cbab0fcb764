package procurement

import (
	"context"
	"time"

	"github.com/jhoicas/swiftstock-api/internal/application/dto"
)

// ReorderReportGenerator puerto para renderizar la lista de compras en PDF.
type ReorderReportGenerator interface {
	GenerateReorderPDF(ctx context.Context, rows []dto.ReorderSuggestionDTO, cfg Config, generatedAt time.Time) ([]byte, error)
}
