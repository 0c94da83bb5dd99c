package service

import (
	"bytes"
	"encoding/base64"

	"payme/api/internal/infra/cache"
	"payme/pkg/utils"

	"github.com/yeqown/go-qrcode/v2"
	"github.com/yeqown/go-qrcode/writer/standard"
)

// QrCodesService renders checkout/pay URLs as base64 PNG QR codes and
// caches them by content; a url renders the same forever.
type QrCodesService struct {
	cache *cache.Cache
}

func NewQrCodesService() *QrCodesService {
	return &QrCodesService{cache: cache.InitStorage()}
}

func (s *QrCodesService) New(content string) (string, error) {
	qr, err := generateQrCode(content)
	if err != nil {
		return "", err
	}

	s.cache.SetNoExp(content, qr)

	return qr, nil
}

func (s *QrCodesService) FindOrNew(content string) (string, error) {
	qr, err := utils.SafeCast[string](s.cache.Load(content))
	if err != nil { // not found
		return s.New(content)
	}
	return qr, nil
}

type roundedModule struct {
	radiusPercent float64
}

// https://github.com/yeqown/go-qrcode/blob/main/example/with-custom-shape/main.go
func (m *roundedModule) DrawFinder(ctx *standard.DrawContext) {
	backup := m.radiusPercent
	m.radiusPercent = 1.0
	m.Draw(ctx)
	m.radiusPercent = backup
}

func (m *roundedModule) Draw(ctx *standard.DrawContext) {
	w, h := ctx.Edge()
	x, y := ctx.UpperLeft()
	color := ctx.Color()

	radius := w / 2
	if h/2 <= radius {
		radius = h / 2
	}
	radius = int(float64(radius) * m.radiusPercent)

	cx, cy := x+float64(w)/2.0, y+float64(h)/2.0
	ctx.DrawCircle(cx, cy, float64(radius))
	ctx.SetColor(color)
	ctx.Fill()
}

type bufferAdaptor struct {
	*bytes.Buffer
}

func (b bufferAdaptor) Close() error {
	return nil
}

func (b bufferAdaptor) Write(p []byte) (int, error) {
	return b.Buffer.Write(p)
}

// returns qr code in base64
func generateQrCode(content string) (string, error) {
	qrc, err := qrcode.New(content)
	if err != nil {
		return "", err
	}

	b := bufferAdaptor{Buffer: bytes.NewBuffer(nil)}
	w := standard.NewWithWriter(b, standard.WithCustomShape(&roundedModule{radiusPercent: 0.7}))

	if err = qrc.Save(w); err != nil {
		return "", err
	}

	return base64.RawStdEncoding.EncodeToString(b.Bytes()), nil
}
