package stt

import "context"

// Stub returns a canned lesson transcript. Selected at composition time when
// no speech backend is configured, so the processing flow stays exercisable
// end to end.
type Stub struct{}

func (Stub) Transcribe(ctx context.Context, uri, language string, alternateLangs []string) (string, error) {
	return stubTranscript, nil
}

func (Stub) Close() error { return nil }

const stubTranscript = `Teacher: Welcome to this learning session! Today we'll be covering Python programming fundamentals.
Student: That sounds great! I'm excited to learn about variables and functions in Python.
Teacher: Let's start with variables. In Python, you can create a variable by simply assigning a value to it. For example: name = 'John'
Student: I see! So Python automatically determines the data type? That's different from Java.
Teacher: Exactly! Python is dynamically typed. Now let's talk about functions. Functions in Python are defined using the 'def' keyword.
Student: Can you show me an example of a simple function?
Teacher: Sure! Here's a simple function: def greet(name): return f'Hello, {name}!' This function takes a name parameter and returns a greeting.
Student: That's really helpful! How do I call this function?
Teacher: You simply call it like this: greet('Alice') and it will return 'Hello, Alice!'`
