package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Rrens/crop-advisory/internal/domain"
)

// topic is one canned advisory. Keywords are matched case-insensitively
// against the question in any language.
type topic struct {
	kind        string
	title       string
	confidence  float64
	keywords    []string
	answers     map[string]string
	suggestions map[string][]string
}

var topics = []topic{
	{
		kind:       "irrigation",
		title:      "Irrigation advice",
		confidence: 0.8,
		keywords:   []string{"irrigat", "water", "सिंचाई", "पानी", "ਸਿੰਚਾਈ", "ਪਾਣੀ"},
		answers: map[string]string{
			"en": "Irrigate early in the morning or in the evening. Water according to your crop: wheat needs water 2-3 times a week, rice needs standing water daily.",
			"hi": "सिंचाई के लिए सुबह या शाम का समय सबसे अच्छा है। अपनी फसल के अनुसार पानी दें - गेहूं को सप्ताह में 2-3 बार, चावल को रोजाना पानी चाहिए।",
			"pa": "ਸਿੰਚਾਈ ਲਈ ਸਵੇਰ ਜਾਂ ਸ਼ਾਮ ਦਾ ਸਮਾਂ ਸਭ ਤੋਂ ਵਧੀਆ ਹੈ। ਕਣਕ ਨੂੰ ਹਫ਼ਤੇ ਵਿੱਚ 2-3 ਵਾਰ, ਚੌਲਾਂ ਨੂੰ ਰੋਜ਼ਾਨਾ ਪਾਣੀ ਚਾਹੀਦਾ ਹੈ।",
		},
		suggestions: map[string][]string{
			"en": {"Check the weather forecast", "Drip irrigation subsidy"},
			"hi": {"मौसम पूर्वानुमान देखें", "ड्रिप सिंचाई सब्सिडी"},
		},
	},
	{
		kind:       "pest_control",
		title:      "Pest and disease control",
		confidence: 0.7,
		keywords:   []string{"pest", "insect", "disease", "कीट", "बीमारी", "रोग", "ਕੀਟ", "ਰੋਗ"},
		answers: map[string]string{
			"en": "Use neem oil or an organic pesticide first. Inspect leaves regularly and remove infected plants immediately.",
			"hi": "कीट नियंत्रण के लिए नीम का तेल या जैविक कीटनाशक का उपयोग करें। नियमित रूप से पत्तियों की जांच करें और संक्रमित पौधों को तुरंत हटा दें।",
			"pa": "ਕੀਟ ਨਿਯੰਤਰਣ ਲਈ ਨੀਮ ਦਾ ਤੇਲ ਜਾਂ ਜੈਵਿਕ ਕੀਟਨਾਸ਼ਕ ਦਾ ਉਪਯੋਗ ਕਰੋ। ਸੰਕਰਮਿਤ ਪੌਦਿਆਂ ਨੂੰ ਤੁਰੰਤ ਹਟਾ ਦਿਓ।",
		},
		suggestions: map[string][]string{
			"en": {"Send a photo of the pest", "Identify the disease"},
			"hi": {"कीट की तस्वीर भेजें", "रोग की पहचान करें"},
		},
	},
	{
		kind:       "fertilizer",
		title:      "Fertilizer advice",
		confidence: 0.8,
		keywords:   []string{"fertili", "manure", "nutrient", "urea", "खाद", "उर्वरक", "ਖਾਦ"},
		answers: map[string]string{
			"en": "Apply fertilizer 15-20 days after sowing and only after a soil test. A balanced NPK 20:20:20 is a safe default.",
			"hi": "खाद डालने का सही समय बुवाई के 15-20 दिन बाद है। NPK अनुपात 20:20:20 का उपयोग करें। मिट्टी की जांच के बाद ही खाद डालें।",
		},
		suggestions: map[string][]string{
			"en": {"Get a soil test", "Learn about organic manure"},
			"hi": {"मिट्टी की जांच करवाएं", "जैविक खाद के बारे में जानें"},
		},
	},
	{
		kind:       "weather",
		title:      "Weather advisory",
		confidence: 0.6,
		keywords:   []string{"weather", "rain", "temperature", "मौसम", "बारिश", "ਮੌਸਮ"},
		answers: map[string]string{
			"en": "Rain is possible in the next two days. Postpone spraying and irrigation and secure harvested produce.",
			"hi": "अगले 2 दिनों में बारिश की संभावना है। छिड़काव और सिंचाई टाल दें और कटी फसल को सुरक्षित रखें।",
		},
		suggestions: map[string][]string{
			"en": {"Update your location", "See the 7-day forecast"},
			"hi": {"स्थान अपडेट करें", "मौसम पूर्वानुमान देखें"},
		},
	},
	{
		kind:       "market",
		title:      "Market advisory",
		confidence: 0.6,
		keywords:   []string{"price", "market", "mandi", "sell", "भाव", "मंडी", "कीमत", "ਮੰਡੀ"},
		answers: map[string]string{
			"en": "Compare modal prices across nearby mandis before selling and set a price alert for your target.",
			"hi": "बेचने से पहले आसपास की मंडियों के भाव की तुलना करें और अपने लक्ष्य मूल्य के लिए अलर्ट सेट करें।",
		},
		suggestions: map[string][]string{
			"en": {"Open market prices", "Set a price alert"},
			"hi": {"मार्केट सेक्शन देखें", "कीमत अलर्ट सेट करें"},
		},
	},
	{
		kind:       "crop_selection",
		title:      "Crop selection",
		confidence: 0.7,
		keywords:   []string{"crop", "seed", "sow", "plant", "फसल", "बीज", "ਫਸਲ"},
		answers: map[string]string{
			"en": "Get your soil tested first. In rabi you can grow wheat, mustard or gram; in kharif rice, maize and cotton are good options.",
			"hi": "सही फसल चुनने के लिए मिट्टी की जांच कराएं। रबी सीजन में गेहूं, सरसों, चना उगा सकते हैं। खरीफ सीजन में चावल, मक्का, कपास अच्छे विकल्प हैं।",
		},
		suggestions: map[string][]string{
			"en": {"Get crop recommendations", "Get a soil test"},
			"hi": {"फसल सुझाव देखें", "मिट्टी की जांच करवाएं"},
		},
	},
	{
		kind:       "greeting",
		title:      "Welcome",
		confidence: 0.9,
		keywords:   []string{"hello", "namaste", "नमस्ते", "ਸਤ ਸ੍ਰੀ ਅਕਾਲ"},
		answers: map[string]string{
			"en": "Hello! I am your agriculture advisor. Ask me about crops, pests, irrigation, fertilizer or weather.",
			"hi": "नमस्ते! मैं आपका कृषि सलाहकार हूं। मैं आपकी फसल, कीट नियंत्रण, सिंचाई, खाद और मौसम के बारे में सलाह दे सकता हूं।",
			"pa": "ਸਤ ਸ੍ਰੀ ਅਕਾਲ! ਮੈਂ ਤੁਹਾਡਾ ਖੇਤੀ ਸਲਾਹਕਾਰ ਹਾਂ। ਫਸਲ, ਕੀਟ, ਸਿੰਚਾਈ, ਖਾਦ ਜਾਂ ਮੌਸਮ ਬਾਰੇ ਪੁੱਛੋ।",
		},
	},
}

var general = topic{
	kind:       "general",
	title:      "General advice",
	confidence: 0.5,
	answers: map[string]string{
		"en": "I am here to help. Please describe your problem or question in detail.",
		"hi": "मैं आपकी मदद करने के लिए यहां हूं। कृपया अपनी समस्या या सवाल विस्तार से बताएं।",
		"pa": "ਮੈਂ ਤੁਹਾਡੀ ਮਦਦ ਕਰਨ ਲਈ ਇੱਥੇ ਹਾਂ। ਕਿਰਪਾ ਕਰਕੇ ਆਪਣਾ ਸਵਾਲ ਵਿਸਤਾਰ ਨਾਲ ਦੱਸੋ।",
	},
	suggestions: map[string][]string{
		"en": {"Crop selection", "Pest control", "Fertilizer advice"},
		"hi": {"फसल चयन", "कीट नियंत्रण", "उर्वरक सलाह"},
	},
}

func matchTopic(question string) topic {
	q := strings.ToLower(question)
	for _, t := range topics {
		for _, kw := range t.keywords {
			if strings.Contains(q, kw) {
				return t
			}
		}
	}
	return general
}

// localized falls back to English when a language is missing
func localized[T any](m map[string]T, lang string) T {
	if v, ok := m[lang]; ok {
		return v
	}
	return m["en"]
}

// AdvisoryService answers farmer questions and keeps them as advisories
type AdvisoryService struct {
	advisories domain.AdvisoryRepository
	now        func() time.Time
}

func NewAdvisoryService(advisories domain.AdvisoryRepository) *AdvisoryService {
	return &AdvisoryService{advisories: advisories, now: time.Now}
}

func (s *AdvisoryService) Chat(ctx context.Context, userID int64, msg domain.ChatMessage) (*domain.ChatResponse, error) {
	return s.answer(ctx, userID, msg.Content, msg.Language)
}

// Voice answers an already transcribed question
func (s *AdvisoryService) Voice(ctx context.Context, userID int64, msg domain.VoiceMessage) (*domain.ChatResponse, error) {
	return s.answer(ctx, userID, msg.TranscribedText, msg.Language)
}

func (s *AdvisoryService) answer(ctx context.Context, userID int64, question, lang string) (*domain.ChatResponse, error) {
	if lang == "" {
		lang = "hi"
	}
	t := matchTopic(question)
	content := localized(t.answers, lang)
	suggestions := localized(t.suggestions, lang)
	if suggestions == nil {
		suggestions = []string{}
	}
	now := domain.NewTimestamp(s.now().UTC())

	entry := &domain.ChatHistoryEntry{
		Title:     t.title,
		Content:   content,
		Type:      t.kind,
		CreatedAt: now,
	}
	if err := s.advisories.AddAdvisory(ctx, userID, entry); err != nil {
		return nil, fmt.Errorf("failed to save advisory: %w", err)
	}

	return &domain.ChatResponse{
		Message:      content,
		AdvisoryType: t.kind,
		Confidence:   t.confidence,
		Suggestions:  suggestions,
		Language:     lang,
		Timestamp:    now,
	}, nil
}

// History returns the user's advisories, newest first
func (s *AdvisoryService) History(ctx context.Context, userID int64, limit, offset int) (*domain.ChatHistory, error) {
	entries, _, err := s.advisories.ListAdvisories(ctx, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list advisories: %w", err)
	}
	return &domain.ChatHistory{Advisories: entries, Total: len(entries)}, nil
}
