package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/dnsweep/dnsweep/brute"
	"github.com/dnsweep/dnsweep/engine"
	"github.com/dnsweep/dnsweep/output"
	"github.com/dnsweep/dnsweep/passive"
	"github.com/dnsweep/dnsweep/progress"
	"github.com/dnsweep/dnsweep/resolver"
	"github.com/dnsweep/dnsweep/reverse"
	"github.com/dnsweep/dnsweep/target"
	"github.com/dnsweep/dnsweep/zonewalk"
)

var version = "undefined"

var (
	// global options
	showVersion = flag.Bool("version", false, "show program version and exit")
	verbose     = flag.Int("verbose", 0, "verbosity level (0-2)")

	// target options
	domain    = flag.String("domain", "", "domain to enumerate")
	enumType  = flag.String("type", "std", "enumeration type: std|brt|zonewalk|reverse")
	rangeSpec = flag.String("range", "", "CIDR block, start-end pair or single address for reverse lookups")
	rangeFile = flag.String("range-file", "", "file with one range per line for reverse lookups")

	// resolver options
	nameservers = flag.String("nameservers", "", "comma-separated nameserver IPs (default: system configuration)")
	tcpPort     = flag.Uint("tcp-port", resolver.DefaultPort, "TCP port for DNS queries and zone transfers")
	udpPort     = flag.Uint("udp-port", resolver.DefaultPort, "UDP port for DNS queries")
	timeout     = flag.Duration("timeout", resolver.DefaultTimeout, "per-query timeout")

	// brute force options
	dict        = flag.String("dict", "", "wordlist for brute force enumeration (default: "+brute.DefaultWordlist+")")
	concurrency = flag.Int("concurrency", brute.DefaultConcurrency, "concurrent brute-force resolutions")

	// passive source options
	proxy = flag.String("proxy", "", "HTTP proxy for passive sources (http://host:port or socks5://host:port)")

	// output options
	jsonFile   = flag.String("json", "", "write results to JSON file")
	xmlFile    = flag.String("xml", "", "write results to XML file")
	sqliteFile = flag.String("sqlite", "", "write results to SQLite database")
)

func run() int {
	flag.Parse()
	if *showVersion {
		fmt.Println(version)
		return 0
	}

	technique, err := target.ParseTechnique(*enumType)
	if err != nil {
		log.Printf("%v", err)
		return 1
	}

	if *tcpPort == 0 || *tcpPort > 65535 || *udpPort == 0 || *udpPort > 65535 {
		log.Print("port numbers must be between 1 and 65535")
		return 1
	}

	desc := target.Descriptor{
		Domain:    *domain,
		Range:     *rangeSpec,
		RangeFile: *rangeFile,
	}
	if err := desc.Validate(technique); err != nil {
		log.Printf("%v", err)
		return 1
	}

	// Quiet log lines by default, colored interactive output when verbose.
	var reporter progress.Reporter = progress.NewLogReporter()
	if *verbose > 0 {
		reporter = progress.NewColorReporter()
	}

	resolverProgress := progress.Discard
	if *verbose > 1 {
		resolverProgress = reporter
	}

	var serverList []string
	if *nameservers != "" {
		serverList = strings.Split(*nameservers, ",")
	}
	res, err := resolver.New(resolver.Config{
		Nameservers: serverList,
		TCPPort:     uint16(*tcpPort),
		UDPPort:     uint16(*udpPort),
		Timeout:     *timeout,
		Progress:    resolverProgress,
	})
	if err != nil {
		log.Printf("unable to construct resolver: %v", err)
		return 1
	}

	client, err := passive.NewClient(passive.FetchConfig{Proxy: *proxy})
	if err != nil {
		log.Printf("%v", err)
		return 1
	}

	eng := engine.New(engine.Config{
		Resolver: res,
		Sources: []passive.Source{
			passive.NewCrtSh(client, reporter),
			passive.NewBing(client, reporter),
			passive.NewYandex(client, reporter),
		},
		Walker:       zonewalk.New(res, zonewalk.NewAXFR(uint16(*tcpPort)), reporter),
		Sweeper:      reverse.New(res, reporter),
		Forcer:       brute.New(res, *concurrency, reporter),
		WordlistPath: *dict,
		Progress:     reporter,
	})

	results, err := eng.Run(context.Background(), technique, desc)
	if err != nil {
		reporter.Error("enumeration failed: %v", err)
		return 1
	}

	var writers []output.Writer
	if *jsonFile != "" {
		reporter.Update("writing results to JSON file: %s", *jsonFile)
		writers = append(writers, &output.JSONFileWriter{Path: *jsonFile})
	}
	if *xmlFile != "" {
		reporter.Update("writing results to XML file: %s", *xmlFile)
		writers = append(writers, &output.XMLFileWriter{Path: *xmlFile})
	}
	if *sqliteFile != "" {
		reporter.Update("writing results to SQLite database: %s", *sqliteFile)
		writers = append(writers, &output.SQLiteWriter{Path: *sqliteFile})
	}

	if len(writers) == 0 {
		if err := output.WriteJSON(os.Stdout, results); err != nil {
			reporter.Error("%v", err)
			return 1
		}
	} else if err := output.NewMultiWriter(writers...).Write(results); err != nil {
		reporter.Error("%v", err)
		return 1
	}

	reporter.Finish("enumeration completed, %d records", len(results))
	return 0
}

func main() {
	log.Default().SetFlags(log.Ldate | log.Ltime | log.Lmicroseconds)
	os.Exit(run())
}
