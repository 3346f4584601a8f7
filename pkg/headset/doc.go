// Package headset is the Go client for the team's real-time translation
// channel. A device opens one persistent WebSocket to the channel server,
// announces its language preference, and from then on receives translated
// chat/subtitle frames and control events while emitting its own chat and
// transcript frames.
//
// # Overview
//
// The package provides:
//   - A connection lifecycle manager owning the single live WebSocket
//   - A tagged JSON message codec (type-discriminated frames)
//   - A thread-safe dispatch queue moving work from the network goroutine to
//     the one consumer allowed to mutate shared state
//   - A protocol dispatcher routing each inbound kind to its side effect
//   - An outbound emitter that funnels sends through the same consumer
//   - A one-shot HTTP client for the server's subtitle and debug endpoints
//   - Env-driven configuration and structured logging with zerolog
//
// # Quick Start
//
//	config := headset.NewHeadsetConfig()
//	display := headset.CreateConsoleDisplay(os.Stdout)
//	client := headset.NewHeadsetClient(config, display, nil)
//
//	if err := client.Connect(); err != nil {
//		log.Fatal(err)
//	}
//	defer client.Close()
//
//	ctx, cancel := context.WithCancel(context.Background())
//	defer cancel()
//	go client.Run(ctx) // drains the dispatch queue on a fixed cadence
//
//	client.SendChat("hello everyone")
//	client.SetLanguage("es", "Quest-1")
//
// # Concurrency
//
// Exactly two execution contexts touch a connection: the receive loop
// goroutine, which only decodes frames and enqueues closures, and the
// consumer that calls Drain (or lets Run do it). All display, session, and
// socket-write side effects happen on the consumer, in frame order. Callers
// of Send may be on any goroutine; transmission itself is deferred to the
// consumer drain.
//
// # Failure model
//
// Nothing in this package is fatal to the process. Connect failures,
// mid-session receive errors, malformed or unknown frames, and sends while
// disconnected all degrade to a structured log entry; the connection is the
// unit that fails, never the application.
package headset
