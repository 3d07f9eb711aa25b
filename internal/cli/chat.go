package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/Rrens/crop-advisory/internal/client"
	"github.com/Rrens/crop-advisory/internal/domain"
	"github.com/rs/zerolog/log"
)

var chatCommands = map[string]command{
	"send":    {"TEXT... [--language hi]", chatSend},
	"voice":   {"TEXT... [--language hi]", chatVoice},
	"history": {"[--limit N] [--offset N]", chatHistory},
	"repl":    {"[--language hi]", chatREPL},
}

func chatSend(ctx context.Context, a *App, args []string) error {
	fs := a.flags("chat send")
	language := fs.String("language", "hi", "hi, en or pa")
	if err := parse(fs, args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		return usageErrorf("chat send: missing question")
	}

	resp, err := a.client.Chat.Send(ctx, a.sess, domain.ChatMessage{
		Content:     strings.Join(fs.Args(), " "),
		Language:    *language,
		MessageType: "text",
	})
	if err != nil {
		return err
	}
	return a.print(resp)
}

func chatVoice(ctx context.Context, a *App, args []string) error {
	fs := a.flags("chat voice")
	language := fs.String("language", "hi", "hi, en or pa")
	if err := parse(fs, args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		return usageErrorf("chat voice: missing transcribed text")
	}

	resp, err := a.client.Chat.SendVoice(ctx, a.sess, domain.VoiceMessage{
		TranscribedText: strings.Join(fs.Args(), " "),
		Language:        *language,
	})
	if err != nil {
		return err
	}
	return a.print(resp)
}

func chatHistory(ctx context.Context, a *App, args []string) error {
	fs := a.flags("chat history")
	limit := fs.Int("limit", 0, "entries to return")
	offset := fs.Int("offset", 0, "entries to skip")
	if err := parse(fs, args); err != nil {
		return err
	}

	entries, err := a.client.Chat.History(ctx, a.sess, *limit, *offset)
	if err != nil {
		return err
	}
	return a.print(entries)
}

// chatREPL keeps one conversation open until EOF, "exit" or "quit".
// Answering a number picks that suggestion from the previous reply.
func chatREPL(ctx context.Context, a *App, args []string) error {
	fs := a.flags("chat repl")
	language := fs.String("language", "hi", "hi, en or pa")
	if err := parse(fs, args); err != nil {
		return err
	}

	var conv domain.Conversation
	for {
		line, err := a.prompt("you> ")
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		switch line {
		case "":
			continue
		case "exit", "quit":
			return nil
		}

		question := pickSuggestion(line, conv.LastSuggestions())
		conv.AddQuestion(question, time.Now())

		resp, err := a.client.Chat.Send(ctx, a.sess, domain.ChatMessage{Content: question, Language: *language, MessageType: "text"})
		if err != nil {
			if errors.Is(err, client.ErrSessionExpired) {
				return err
			}
			log.Error().Err(err).Msg("Chat request failed")
			continue
		}
		conv.AddAnswer(resp)

		fmt.Fprintf(a.out, "bot> %s\n", resp.Message)
		for i, s := range resp.Suggestions {
			fmt.Fprintf(a.out, "  [%d] %s\n", i+1, s)
		}
	}
}

func pickSuggestion(line string, suggestions []string) string {
	n, err := strconv.Atoi(line)
	if err != nil || n < 1 || n > len(suggestions) {
		return line
	}
	return suggestions[n-1]
}
