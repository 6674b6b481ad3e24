package handlers

import (
	"strings"

	"campusmarket/internal/api"
	applog "campusmarket/internal/log"

	"github.com/gofiber/fiber/v2"
)

const chatGreeting = "¡Hola! Soy el asistente de CampusMarket. Puedo ayudarte a buscar libros y material académico, encontrar equipos y útiles, o a usar la plataforma. ¿En qué te puedo ayudar hoy?"

// ChatMessage is one transcript entry rendered in the chat view.
type ChatMessage struct {
	Text string
	Bot  bool
}

// ChatHandler fronts the assistant service. The assistant is stateless; the
// transcript travels in hidden form fields, like the sell draft does.
type ChatHandler struct {
	Assistant *api.Client
}

func (h *ChatHandler) View(c *fiber.Ctx) error {
	return render(c, "chat", fiber.Map{
		"Messages": []ChatMessage{{Text: chatGreeting, Bot: true}},
	})
}

// Send posts one message to the assistant and re-renders the transcript with
// its reply appended. A failed call appends an apology instead of erroring
// the page, so the conversation survives.
func (h *ChatHandler) Send(c *fiber.Ctx) error {
	transcript := transcriptFromForm(c)

	msg := strings.TrimSpace(c.FormValue("message"))
	if msg == "" {
		return render(c, "chat", fiber.Map{"Messages": transcript})
	}
	if len([]rune(msg)) > 500 {
		msg = string([]rune(msg)[:500])
	}
	transcript = append(transcript, ChatMessage{Text: msg})

	reply, err := h.Assistant.ChatMessage(c.Context(), msg)
	if err != nil {
		applog.Error(c, "chat.message.fail", err, nil)
		reply = "Lo siento, hubo un error al procesar tu mensaje. Por favor, intenta de nuevo."
	}
	transcript = append(transcript, ChatMessage{Text: reply, Bot: true})

	return render(c, "chat", fiber.Map{"Messages": transcript})
}

func transcriptFromForm(c *fiber.Ctx) []ChatMessage {
	args := c.Request().PostArgs()
	texts := args.PeekMulti("text")
	whos := args.PeekMulti("who")
	transcript := []ChatMessage{{Text: chatGreeting, Bot: true}}
	for i, t := range texts {
		if i == 0 {
			// First entry is the greeting re-posted by the form.
			continue
		}
		m := ChatMessage{Text: string(t)}
		if i < len(whos) && string(whos[i]) == "bot" {
			m.Bot = true
		}
		transcript = append(transcript, m)
	}
	return transcript
}
