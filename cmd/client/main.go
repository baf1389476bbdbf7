// Command client is an interactive chat client. It connects to a relay
// server, sends stdin lines as text frames and prints every frame the server
// relays back. The literal input "exit" quits without sending a frame.
package main

import (
	"bufio"
	"fmt"
	"io"
	"net"
	"net/url"
	"os"
	"sync/atomic"

	"github.com/gorilla/websocket"
)

func main() {
	if len(os.Args) != 3 {
		fmt.Fprintf(os.Stderr, "Usage: %s <host> <port>\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Example: %s 127.0.0.1 8080\n", os.Args[0])
		os.Exit(1)
	}

	c, err := connect(os.Args[1], os.Args[2])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Connected to server at %s:%s\n", os.Args[1], os.Args[2])

	c.run(os.Stdin, os.Stdout)
}

// client owns the connection and the two interactive loops. The send loop
// runs on the calling goroutine and is the only path that stops the process;
// the receive loop only prints until the connection ends.
type client struct {
	conn     *websocket.Conn
	quitting atomic.Bool
	done     chan struct{}
}

// connect dials the relay endpoint on the given host and port.
func connect(host, port string) (*client, error) {
	u := url.URL{Scheme: "ws", Host: net.JoinHostPort(host, port), Path: "/ws"}
	conn, _, err := websocket.DefaultDialer.Dial(u.String(), nil)
	if err != nil {
		return nil, err
	}
	return &client{
		conn: conn,
		done: make(chan struct{}),
	}, nil
}

func (c *client) run(in io.Reader, out io.Writer) {
	go c.receive(out)
	c.send(in, out)
	c.disconnect()
}

// send reads lines from in and transmits each as one text frame. It returns
// on the literal line "exit" or on end of input, without transmitting a
// frame for either.
func (c *client) send(in io.Reader, out io.Writer) {
	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "Enter message: ")
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		if line == "exit" {
			return
		}
		if err := c.conn.WriteMessage(websocket.TextMessage, []byte(line)); err != nil {
			fmt.Fprintf(os.Stderr, "Write error: %v\n", err)
			return
		}
	}
}

// receive prints relayed frames until the server closes the connection or a
// read error occurs.
func (c *client) receive(out io.Writer) {
	defer close(c.done)
	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if c.quitting.Load() {
				return
			}
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				fmt.Fprintln(out, "\nConnection closed by server")
			} else {
				fmt.Fprintf(os.Stderr, "\nRead error: %v\n", err)
			}
			return
		}
		fmt.Fprintf(out, "\nReceived: %s\n", message)
	}
}

// disconnect performs a best-effort close handshake and waits for the
// receive loop to finish.
func (c *client) disconnect() {
	c.quitting.Store(true)
	c.conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	c.conn.Close()
	<-c.done
}
