package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"runtime/debug"

	"github.com/pkg/profile"
	"go.uber.org/zap"

	"github.com/e1732a364fed/relaylist/config"
	"github.com/e1732a364fed/relaylist/netLayer"
	"github.com/e1732a364fed/relaylist/relay"
	"github.com/e1732a364fed/relaylist/utils"
)

var (
	configFileName string
	relayFileName  string
	geoipFileName  string
	startPProf     bool

	standardConf config.Standard

	//list, show 和 交互模式 读取的都是这里的快照
	relayStore = relay.NewStore()
)

const (
	defaultConfFn  = "relaylist.toml"
	defaultRelayFn = "relays.json"
)

func init() {
	flag.StringVar(&configFileName, "c", defaultConfFn, "config file name")
	flag.StringVar(&relayFileName, "f", defaultRelayFn, "relay list json file")
	flag.BoolVar(&startPProf, "pp", false, "cpu pprof")

	flag.IntVar(&utils.LogLevel, "ll", utils.DefaultLL, "log level,0=debug, 1=info, 2=warning, 3=error, 4=fatal")
	flag.StringVar(&utils.LogOutFileName, "lf", "", "output file for log; If empty, no log file will be used.")

	flag.StringVar(&geoipFileName, "geoip", "", "maxmind mmdb file name, used to check relay countries; If empty, no check.")
	flag.StringVar(&utils.ExtraSearchPath, "path", "", "search path for config, relay list and mmdb files")
}

func main() {
	os.Exit(mainFunc())
}

func mainFunc() (result int) {
	defer func() {
		if r := recover(); r != nil {
			if ce := utils.CanLogErr("Captured panic!"); ce != nil {
				stackStr := string(debug.Stack())
				ce.Write(
					zap.Any("err:", r),
					zap.String("stacktrace", stackStr),
				)
				log.Println(stackStr)
			} else {
				log.Println("panic captured!", r, "\n", string(debug.Stack()))
			}
			result = -3
		}
	}()

	utils.ParseFlags()

	if cmdPrintVer {
		printVersion(os.Stdout)
		return
	}

	if startPProf {
		//若不使用 NoShutdownHook, 则 我们ctrl+c退出时不会产生 pprof文件
		p := profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.NoShutdownHook)
		defer p.Stop()
	}

	if err := loadConfig(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return -1
	}

	utils.InitLog()
	if ce := utils.CanLogDebug("All Given Flags"); ce != nil {
		ce.Write(zap.Any("flags", utils.GivenFlags))
	}

	if interactive_mode {
		if err := reloadRelayList(); err != nil {
			if ce := utils.CanLogErr("load relay list failed"); ce != nil {
				ce.Write(zap.Error(err))
			}
			return -1
		}
		runCli()
		return
	}

	args := flag.Args()
	if len(args) == 0 {
		args = []string{"list"}
	}
	if err := runCommand(os.Stdout, args); err != nil {
		if ce := utils.CanLogErr("command failed"); ce != nil {
			ce.Write(zap.String("cmd", args[0]), zap.Error(err))
		} else {
			fmt.Fprintln(os.Stderr, err)
		}
		return -1
	}
	return
}

// 命令行参数 优先于 配置文件
func loadConfig() error {
	fpath := utils.GetFilePath(configFileName)
	if !utils.FileExist(fpath) {
		if utils.IsFlagGiven("c") {
			return utils.ErrInErr{ErrDesc: "-c provided but config file doesn't exist", ErrDetail: os.ErrNotExist, Data: configFileName}
		}
		return nil
	}

	conf, err := config.LoadTomlConfFile(fpath)
	if err != nil {
		return err
	}
	standardConf = *conf

	if appConf := standardConf.App; appConf != nil {
		if appConf.LogFile != nil && !utils.IsFlagGiven("lf") {
			utils.LogOutFileName = *appConf.LogFile
		}
		if appConf.LogLevel != nil && !utils.IsFlagGiven("ll") {
			utils.LogLevel = *appConf.LogLevel
		}
		if appConf.Geoip != "" && !utils.IsFlagGiven("geoip") {
			geoipFileName = appConf.Geoip
		}
	}
	if src := standardConf.Source; src != nil && src.File != "" && !utils.IsFlagGiven("f") {
		relayFileName = src.File
	}
	return nil
}

// reloadRelayList 读取 relay list 文件, 按 [filter] 过滤, 附加 Location 后放入 relayStore.
func reloadRelayList() error {
	keep, err := standardConf.Filter.Predicate()
	if err != nil {
		return err
	}

	l, err := relay.LoadFile(findFile(relayFileName))
	if err != nil {
		return err
	}
	l = l.Filter(keep)

	var res relay.LocationResolver = relay.HierarchyResolver{}
	if geoipFileName != "" {
		db, err := netLayer.OpenGeoipDB(findFile(geoipFileName))
		if err != nil {
			if ce := utils.CanLogWarn("geoip check disabled"); ce != nil {
				ce.Write(zap.Error(err))
			}
		} else {
			defer db.Close()
			res = relay.GeoipResolver{DB: db}
		}
	}

	v := relayStore.Replace(l.WithLocations(res))

	if ce := utils.CanLogInfo("relay list ready"); ce != nil {
		st := l.Stats()
		ce.Write(zap.Uint64("version", v), zap.Int("countries", st.Countries), zap.Int("relays", st.Relays))
	}
	return nil
}

// 搜索不到时原样返回, 让随后的打开操作报出带文件名的错误
func findFile(fn string) string {
	if p := utils.GetFilePath(fn); p != "" {
		return p
	}
	return fn
}
