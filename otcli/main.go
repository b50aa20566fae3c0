package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/schuko/tracing/trace2go"
	"github.com/npillmayer/typeshape"
	"github.com/npillmayer/typeshape/ot"
	"github.com/pterm/pterm"
)

// tracer traces with key 'typeshape.cli'
func tracer() tracing.Trace {
	return tracing.Select("typeshape.cli")
}

func main() {
	initDisplay()

	// set up logging
	tracing.RegisterTraceAdapter("go", gologadapter.GetAdapter(), false)
	conf := testconfig.Conf{
		"tracing.adapter":        "go",
		"trace.typeshape.cli":    "Info",
		"trace.typeshape":        "Error",
		"trace.typeshape.ot":     "Error",
		"trace.typeshape.layout": "Error",
		"trace.typeshape.shaper": "Error",
	}
	if err := trace2go.ConfigureRoot(conf, "trace", trace2go.ReplaceTracers(true)); err != nil {
		fmt.Printf("error configuring tracing")
		os.Exit(1)
	}
	tracing.SetTraceSelector(trace2go.Selector())

	// command line flags
	tlevel := flag.String("trace", "Info", "Trace level [Debug|Info|Error]")
	fontname := flag.String("font", "", "Font to load")
	flag.Parse()
	tracer().SetTraceLevel(tracing.LevelError)            // will set the correct level later
	pterm.Info.Println("Welcome to OpenType shaping CLI") // colored welcome message
	//
	// set up REPL
	repl, err := readline.New("ot > ")
	if err != nil {
		tracer().Errorf(err.Error())
		os.Exit(3)
	}
	intp := &Intp{repl: repl}
	//
	// load font to use
	if err := intp.loadFont(*fontname); err != nil { // font name provided by flag
		tracer().Errorf(err.Error())
		os.Exit(4)
	}
	//
	// start receiving commands
	pterm.Info.Println("Quit with <ctrl>D") // inform user how to stop the CLI
	switch *tlevel {
	case "Debug":
		tracer().SetTraceLevel(tracing.LevelDebug)
	case "Info":
		tracer().SetTraceLevel(tracing.LevelInfo)
	case "Error":
		tracer().SetTraceLevel(tracing.LevelError)
	default:
		tracer().Errorf("Invalid trace level: %s", *tlevel)
		os.Exit(5)
	}
	tracer().Infof("Trace level is %s", *tlevel)
	intp.REPL() // go into interactive mode
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.EnableDebugMessages()
	pterm.Info.Prefix = pterm.Prefix{
		Text:  " !  ",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  " Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

// Intp is our interpreter object
type Intp struct {
	font  *typeshape.ScalableFont
	repl  *readline.Instance
	table *ot.LayoutTable // GSUB or GPOS, set by command 'table'
}

func (intp *Intp) String() string {
	if intp == nil || intp.table == nil {
		return "()"
	}
	return fmt.Sprintf("( table=%s )", intp.table.Tag)
}

// REPL starts interactive mode.
func (intp *Intp) REPL() {
	for {
		pterm.Println(intp.String())
		line, err := intp.repl.Readline()
		if err != nil { // io.EOF
			break
		}
		if line = strings.TrimSpace(line); line == "" {
			continue
		}
		cmd, err := intp.parseCommand(line)
		if err != nil {
			tracer().Errorf(err.Error())
			continue
		}
		err, quit := intp.execute(cmd)
		if err != nil {
			tracer().Errorf(err.Error())
			continue
		}
		if quit {
			break
		}
	}
	pterm.Info.Println("Good bye!")
}

type Op struct {
	code   int
	arg    string
	format string
}

func (op *Op) noArg() bool {
	return op.arg == ""
}

type Command struct {
	count int
	op    [32]Op
}

const NOOP = -1
const (
	// op-code QUIT will not have arguments
	QUIT int = iota
	// op-codes below may have arguments
	HELP
	TABLE
	SCRIPTS
	FEATURES
	LOOKUPS
	GLYPHS
	SHAPE // consumes the rest of the line
)

var opMap = map[string]int{
	"quit":     QUIT,
	"help":     HELP,
	"table":    TABLE,
	"scripts":  SCRIPTS,
	"features": FEATURES,
	"lookups":  LOOKUPS,
	"glyphs":   GLYPHS,
	"shape":    SHAPE,
}

var opNames = []string{
	"quit",
	"help",
	"table",
	"scripts",
	"features",
	"lookups",
	"glyphs",
	"shape",
}

var command = Command{}

func resetCommand() {
	command.count = 0
	for i := range command.op {
		command.op[i].code = NOOP
		command.op[i].arg = ""
		command.op[i].format = ""
	}
}

// parseCommand splits a line into steps of the form "op:arg:format", e.g.
// "table:GSUB lookups:5" or "features:deva:HIN". "shape:" takes the rest of
// the line as its argument.
func (intp *Intp) parseCommand(line string) (*Command, error) {
	resetCommand()
	steps := strings.Split(line, " ")
	for i := 0; i < len(steps) && i < len(command.op); i++ {
		step := steps[i]
		c := strings.Split(step, ":")
		code, ok := opMap[strings.ToLower(c[0])]
		if !ok {
			code = HELP
		}
		command.count++
		command.op[i].code = code
		if code == QUIT {
			return &command, nil
		}
		if code == SHAPE {
			_, text, _ := strings.Cut(line, ":")
			command.op[i].arg = strings.TrimSpace(text)
			tracer().Infof("shape: '%s'", command.op[i].arg)
			return &command, nil
		}
		command.op[i].arg = getOptArg(c, 1)
		command.op[i].format = getOptArg(c, 2)
		if command.op[i].arg == "" {
			tracer().Infof("%s", opNames[code])
		} else {
			tracer().Infof("%s: looking for '%s'", opNames[code], command.op[i].arg)
		}
	}
	return &command, nil
}

func getOptArg(c []string, i int) string {
	if len(c) > i {
		return c[i]
	}
	return ""
}

var commandFn = map[int]func(*Intp, *Op) (error, bool){
	QUIT:     quitOp,
	HELP:     helpOp,
	TABLE:    tableOp,
	SCRIPTS:  scriptsOp,
	FEATURES: featuresOp,
	LOOKUPS:  lookupsOp,
	GLYPHS:   glyphsOp,
	SHAPE:    shapeOp,
}

func (intp *Intp) execute(cmd *Command) (err error, stop bool) {
	tracer().Debugf("cmd = %v", cmd.op[:cmd.count])
	for _, c := range cmd.op[:cmd.count] {
		f, ok := commandFn[c.code]
		if !ok {
			pterm.Error.Printf("unknown command code: %d\n", c.code)
			return nil, false
		}
		err, stop = f(intp, &c)
		if err != nil {
			pterm.Error.Println(err)
			return
		}
		if stop {
			return
		}
	}
	return
}

func quitOp(intp *Intp, op *Op) (error, bool) {
	pterm.Println("Goodbye!")
	return nil, true
}

// --- Font Loading -----------------------------------------------------

func (intp *Intp) loadFont(fontname string) (err error) {
	if fontname == "" {
		return errors.New("no font given, use flag -font")
	}
	if intp.font, err = typeshape.LoadOpenTypeFont(fontname); err != nil {
		tracer().Errorf("cannot load font %s: %s", fontname, err)
		return err
	}
	tracer().Infof("loaded font = %s", intp.font.Fontname)
	pterm.Printf("font %s: GSUB=%v, GPOS=%v, GDEF=%v\n", intp.font.Fontname,
		intp.font.Layout.HasGSUB(), intp.font.Layout.HasGPOS(), intp.font.Layout.GDEF != nil)
	return nil
}

// ----------------------------------------------------------------------

var ERR_NO_TABLE = errors.New("no table set")

func (intp *Intp) checkTable() error {
	if intp.table == nil {
		return ERR_NO_TABLE
	}
	return nil
}
