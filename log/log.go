package log

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"
)

// A buffered leveled logger. Every package asks for a Logger by header with
// GetLog, lines look like `2006/01/02 15:04:05.000000 [Projector] [INFO]: projected 3 rows`.
// Before InitLogger is called, or after CloseLog, lines go to the console.
// Usage:
// ```golang
//	InitLogger("./colexpr.log", 4096, time.Second, false)
//	defer CloseLog()
//	GetLog("Projector").InfoF("projected %d rows", n)
// ```

const (
	DEBUG = iota
	INFO
	WARN
	ERROR
	FATAL
)

var (
	logLevelMaps = map[int]string{
		DEBUG: "DEBUG",
		INFO:  "INFO",
		WARN:  "WARN",
		ERROR: "ERROR",
		FATAL: "FATAL",
	}
	fileLog            *SimpleLog
	globalLogLock      sync.RWMutex
	minLevel           = INFO
	ErrReInitializeLog = errors.New("log have been initialized")
	ErrClosedLog       = errors.New("log have been closed")
	logBufChCapacity   = 1 << 10
)

type SimpleLog struct {
	SavePath      string
	BufferSize    int
	flushTime     time.Duration
	lastFlushTime time.Time
	Buf           *bytes.Buffer
	lock          sync.Mutex
	logFlusher    *logFlusher
	logCh         chan *bytes.Buffer
	verbose       bool
}

// Logger prints with a fixed header.
type Logger struct {
	header string
}

func GetLog(header string) Logger {
	return Logger{header: header}
}

// InitLogger starts writing to savePath. Buffered lines are flushed once the
// buffer holds bufSize bytes or flushTime passed since the last flush. A
// verbose logger prints every line on the console too.
func InitLogger(savePath string, bufSize int, flushTime time.Duration, verbose bool) error {
	globalLogLock.Lock()
	defer globalLogLock.Unlock()
	if fileLog != nil {
		return ErrReInitializeLog
	}
	logCh := make(chan *bytes.Buffer, logBufChCapacity)
	flusher, err := newLogFlusher(savePath, logCh)
	if err != nil {
		return err
	}
	fileLog = &SimpleLog{
		SavePath:      savePath,
		BufferSize:    bufSize,
		flushTime:     flushTime,
		lastFlushTime: time.Now(),
		Buf:           new(bytes.Buffer),
		logFlusher:    flusher,
		logCh:         logCh,
		verbose:       verbose,
	}
	go flusher.flushLog()
	return nil
}

// CloseLog flushes every buffered line and waits until the file is closed.
func CloseLog() error {
	globalLogLock.Lock()
	log := fileLog
	fileLog = nil
	globalLogLock.Unlock()
	if log == nil {
		return ErrClosedLog
	}
	log.closeLogger()
	<-log.logFlusher.done
	return log.logFlusher.err
}

// SetLevel drops every line below level.
func SetLevel(level int) {
	globalLogLock.Lock()
	defer globalLogLock.Unlock()
	minLevel = level
}

// ParseLevel maps a level name such as "warn" to its level.
func ParseLevel(name string) (int, error) {
	for level, levelName := range logLevelMaps {
		if strings.EqualFold(name, levelName) {
			return level, nil
		}
	}
	return INFO, errors.New(fmt.Sprintf("unknown log level %s", name))
}

func (log Logger) DebugF(format string, params ...interface{}) {
	printLog(log.header, DEBUG, format, params...)
}

func (log Logger) InfoF(format string, params ...interface{}) {
	printLog(log.header, INFO, format, params...)
}

func (log Logger) WarnF(format string, params ...interface{}) {
	printLog(log.header, WARN, format, params...)
}

func (log Logger) ErrorF(format string, params ...interface{}) {
	printLog(log.header, ERROR, format, params...)
}

func (log Logger) FatalF(format string, params ...interface{}) {
	printLog(log.header, FATAL, format, params...)
}

func printLog(header string, level int, format string, a ...interface{}) {
	globalLogLock.RLock()
	defer globalLogLock.RUnlock()
	if level < minLevel {
		return
	}
	l := fmt.Sprintf("%s [%s] [%s]: ", time.Now().Format("2006/01/02 15:04:05.000000"), header, logLevelMaps[level])
	l = fmt.Sprintf(l+format, a...)
	if fileLog == nil {
		println(l)
		return
	}
	fileLog.printLog(l)
}

func (log *SimpleLog) printLog(l string) {
	if log.verbose {
		println(l)
	}
	log.lock.Lock()
	defer log.lock.Unlock()
	log.Buf.WriteString(l)
	log.Buf.WriteByte('\n')
	log.doFlushIfNeed(false)
}

func (log *SimpleLog) closeLogger() {
	log.lock.Lock()
	defer log.lock.Unlock()
	log.doFlushIfNeed(true)
	close(log.logCh)
}

func (log *SimpleLog) doFlushIfNeed(force bool) {
	if log.Buf.Len() == 0 {
		return
	}
	if force || log.Buf.Len() >= log.BufferSize || time.Since(log.lastFlushTime) >= log.flushTime {
		buf := log.Buf
		log.Buf = new(bytes.Buffer)
		log.logCh <- buf
		log.lastFlushTime = time.Now()
	}
}

type logFlusher struct {
	fileName string
	f        *os.File
	logCh    <-chan *bytes.Buffer
	done     chan struct{}
	err      error
}

func newLogFlusher(fileName string, logCh <-chan *bytes.Buffer) (*logFlusher, error) {
	f, err := os.OpenFile(fileName, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		return nil, err
	}
	return &logFlusher{
		fileName: fileName,
		f:        f,
		logCh:    logCh,
		done:     make(chan struct{}),
	}, nil
}

func (flusher *logFlusher) flushLog() {
	defer close(flusher.done)
	for buf := range flusher.logCh {
		// The first write error is kept for CloseLog, later buffers are dropped.
		if flusher.err != nil {
			continue
		}
		_, flusher.err = buf.WriteTo(flusher.f)
	}
	if err := flusher.f.Close(); flusher.err == nil {
		flusher.err = err
	}
}
