package service

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"strings"

	"github.com/Rrens/crop-advisory/internal/domain"
)

// ErrUnsupportedImage is returned for uploads that do not decode as an image
var ErrUnsupportedImage = errors.New("file is not a supported image (jpeg, png or gif)")

type diseaseInfo struct {
	name, description, treatment, prevention, severity string
}

type pestInfo struct {
	name, description, control, prevention, symptoms string
}

type cropInfo struct {
	name, description string
}

var diseases = map[string][2]diseaseInfo{
	// index 0 is chosen for low-green images, 1 otherwise
	"rice": {
		{"Bacterial leaf blight", "Yellow to brown lesions along the leaf margins", "Spray copper oxychloride 0.3%", "Use healthy seed and manage field water", "high"},
		{"Blast", "Spindle-shaped brown spots on leaves and nodes", "Spray tricyclazole 0.1%", "Keep nitrogen moderate and the field clean", "high"},
	},
	"wheat": {
		{"Rust", "Orange-brown pustules on the leaves", "Spray propiconazole 0.1%", "Sow resistant varieties", "medium"},
		{"Powdery mildew", "White powdery growth on the leaf surface", "Spray wettable sulphur 0.2%", "Keep good air flow in the field", "medium"},
	},
	"tomato": {
		{"Early blight", "Brown concentric spots that keep growing", "Spray mancozeb 0.2%", "Keep proper spacing between plants", "medium"},
		{"Late blight", "Dark water-soaked patches on leaves and fruit", "Spray metalaxyl 0.1%", "Avoid overhead irrigation", "high"},
	},
}

var pests = map[string]pestInfo{
	"rice":   {"Brown plant hopper", "Small brown insect feeding at the plant base", "Spray imidacloprid 0.05%", "Manage field water and avoid excess nitrogen", "Leaves yellow and dry in circular patches"},
	"wheat":  {"Aphid", "Small green or black insects sucking leaf sap", "Spray dimethoate 0.03%", "Encourage natural predators", "Leaves turn yellow and curl"},
	"tomato": {"Whitefly", "Tiny white insects under the leaves", "Spray acetamiprid 0.01%", "Use yellow sticky traps", "Leaves yellow and viruses spread"},
}

var cropsByImage = map[string]cropInfo{
	"rice":   {"Rice", "India's main kharif food crop"},
	"wheat":  {"Wheat", "The main rabi cereal"},
	"tomato": {"Tomato", "An important vegetable crop"},
}

// colourProfile is the mean RGB of an image, 0-255 per channel
type colourProfile struct {
	r, g, b float64
}

func profileImage(data []byte) (colourProfile, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return colourProfile{}, fmt.Errorf("%w: %v", ErrUnsupportedImage, err)
	}

	bounds := img.Bounds()
	// sample at most ~256x256 points
	step := max(1, max(bounds.Dx(), bounds.Dy())/256)

	var r, g, b, n float64
	for y := bounds.Min.Y; y < bounds.Max.Y; y += step {
		for x := bounds.Min.X; x < bounds.Max.X; x += step {
			pr, pg, pb, _ := img.At(x, y).RGBA()
			r += float64(pr >> 8)
			g += float64(pg >> 8)
			b += float64(pb >> 8)
			n++
		}
	}
	if n == 0 {
		return colourProfile{}, fmt.Errorf("%w: empty image", ErrUnsupportedImage)
	}
	return colourProfile{r: r / n, g: g / n, b: b / n}, nil
}

func (p colourProfile) cropType() string {
	switch {
	case p.g > 120:
		return "rice"
	case p.g > 100:
		return "wheat"
	default:
		return "tomato"
	}
}

func resolveCrop(cropType string, p colourProfile) string {
	cropType = strings.ToLower(strings.TrimSpace(cropType))
	if cropType == "" {
		return p.cropType()
	}
	return cropType
}

// ImageService runs colour heuristics over field photos. It stands in for
// a trained classifier and only needs the decoded pixels.
type ImageService struct{}

func NewImageService() *ImageService {
	return &ImageService{}
}

func (s *ImageService) ClassifyDisease(data []byte, cropType string) (*domain.DiseaseResult, error) {
	p, err := profileImage(data)
	if err != nil {
		return nil, err
	}
	crop := resolveCrop(cropType, p)

	idx := 1
	if p.g < 100 {
		idx = 0
	}
	info, ok := diseases[crop]
	if !ok {
		return &domain.DiseaseResult{
			DiseaseName:     "Unknown disease",
			Confidence:      0.3,
			Description:     "No reference data for this crop",
			TreatmentAdvice: "Consult your nearest Krishi Vigyan Kendra",
			PreventionTips:  "Keep the field clean",
			Severity:        "unknown",
			CropType:        &crop,
		}, nil
	}
	d := info[idx]
	return &domain.DiseaseResult{
		DiseaseName:     d.name,
		Confidence:      0.75,
		Description:     d.description,
		TreatmentAdvice: d.treatment,
		PreventionTips:  d.prevention,
		Severity:        d.severity,
		CropType:        &crop,
	}, nil
}

func (s *ImageService) ClassifyPest(data []byte, cropType string) (*domain.PestResult, error) {
	p, err := profileImage(data)
	if err != nil {
		return nil, err
	}
	crop := resolveCrop(cropType, p)

	info, ok := pests[crop]
	if !ok {
		info = pests["wheat"]
	}
	return &domain.PestResult{
		PestName:        info.name,
		Confidence:      0.7,
		Description:     info.description,
		ControlMeasures: info.control,
		PreventionTips:  info.prevention,
		DamageSymptoms:  info.symptoms,
		CropType:        &crop,
	}, nil
}

func (s *ImageService) ClassifyCrop(data []byte) (*domain.CropResult, error) {
	p, err := profileImage(data)
	if err != nil {
		return nil, err
	}
	info := cropsByImage[p.cropType()]
	return &domain.CropResult{
		CropName:     info.name,
		Confidence:   0.8,
		Description:  info.description,
		GrowthStage:  "vegetative",
		HealthStatus: healthStatus(p.greenRatio()),
	}, nil
}

func (p colourProfile) greenRatio() float64 {
	sum := p.r + p.g + p.b
	if sum == 0 {
		return 0
	}
	return p.g / sum
}

// healthStatus grades the doubled green ratio; an even grey image scores 0.67
func healthStatus(ratio float64) string {
	score := min(1.0, ratio*2)
	switch {
	case score > 0.8:
		return "healthy"
	case score > 0.6:
		return "moderate"
	default:
		return "poor"
	}
}

func (s *ImageService) AnalyzePlantHealth(data []byte, cropType string) (*domain.PlantHealthResult, error) {
	p, err := profileImage(data)
	if err != nil {
		return nil, err
	}
	crop := resolveCrop(cropType, p)
	score := min(1.0, p.greenRatio()*2)
	status := healthStatus(p.greenRatio())

	out := &domain.PlantHealthResult{
		OverallHealthScore: score,
		HealthStatus:       status,
		IssuesDetected:     []string{},
		HealthSummary:      fmt.Sprintf("Plant health is %s", status),
		Confidence:         0.75,
		CropType:           &crop,
	}
	switch status {
	case "healthy":
		out.Recommendations = "Plants look healthy. Continue regular care."
	case "moderate":
		out.IssuesDetected = []string{"Mild yellowing of leaves"}
		out.Recommendations = "Minor stress detected. Review fertilizer and water management."
	default:
		out.IssuesDetected = []string{"Yellowing of leaves", "Possible disease or pest attack"}
		out.Recommendations = "Severe stress detected. Treat immediately and consult an expert."
	}
	return out, nil
}
