package main

import (
	"flag"
	"io"
	"log"
	"math/rand"
	"net/http"
	"os"

	circuit "rtcircuit"
	"rtcircuit/load"
	"rtcircuit/mna/debug"
	"rtcircuit/types"
)

// demo 电池-开关-光敏电阻-灯泡回路,灯泡并联电容
const demo = `
battery   1 0   0 0.5 rot=1.5707963267948966
switch    2 0.5 0 0   open=false
ldr       3 1.5 0 0
bulb      4 2   0 0.5 rot=1.5707963267948966
capacitor 5 2   0 0.5 rot=1.5707963267948966
wire      6 1   0 1   offset=1
`

func main() {
	var (
		scenePath = flag.String("scene", "", "场景文件,为空时使用内置示例")
		frames    = flag.Int("frames", 300, "运行帧数")
		selected  = flag.Int("select", 0, "监视元件ID")
		ambient   = flag.Bool("ambient", false, "光照/温度随时间漂移")
		seed      = flag.Int64("seed", 1, "随机种子")
		every     = flag.Int("every", types.PublishEvery, "每隔多少帧记录一次")
		jsonOut   = flag.String("json", "", "输出JSON记录")
		htmlOut   = flag.String("html", "", "输出HTML曲线")
		plotOut   = flag.String("png", "", "输出PNG曲线")
		sceneOut  = flag.String("export", "", "导出最终场景")
		httpAddr  = flag.String("http", "", "运行结束后在此地址发布HTML曲线")
	)
	flag.Parse()

	cfg := circuit.DefaultConfig()
	cfg.PublishEvery = *every
	cfg.Rand = rand.New(rand.NewSource(*seed))
	cir, err := circuit.New(cfg)
	if err != nil {
		log.Fatal(err)
	}
	var scene *load.Scene
	if *scenePath != "" {
		scene, err = load.LoadFile(*scenePath)
	} else {
		scene, err = load.LoadString(demo)
	}
	if err != nil {
		log.Fatal(err)
	}
	if err := load.Apply(cir, scene); err != nil {
		log.Fatal(err)
	}
	if *selected != 0 {
		if err := cir.Select(*selected); err != nil {
			log.Fatal(err)
		}
	}

	record := &debug.Record{}
	cir.Subscribe(record.Update)
	var drift *Drift
	if *ambient {
		drift = NewDrift(*seed)
	}
	var st types.State
	for i := 0; i < *frames; i++ {
		if drift != nil {
			if err := drift.Apply(cir); err != nil {
				log.Println(err)
			}
		}
		st = cir.Frame()
		if st.IsTripped {
			break
		}
	}
	record.SetHistory(cir.History())
	log.Printf("t=%.3fs frames=%d state=%s P=%.4gW I=%.4gA resolves=%d",
		st.Time, st.Frame, st.RunState, st.TotalPower, st.TotalCurrent, cir.Resolves())
	if st.Fault != "" {
		log.Printf("fault: %s", st.Fault)
	}
	if st.Warning != "" {
		log.Printf("warning: %s", st.Warning)
	}

	write(*jsonOut, record.Render)
	charts := &debug.Charts{Record: record}
	write(*htmlOut, charts.Render)
	write(*plotOut, debug.NewPlot(record, "png").Render)
	if *sceneOut != "" {
		if err := load.ExportFile(*sceneOut, load.Capture(cir)); err != nil {
			log.Fatal(err)
		}
	}
	if *httpAddr != "" {
		http.HandleFunc("/", charts.Handler)
		log.Printf("serving charts on %s", *httpAddr)
		log.Fatal(http.ListenAndServe(*httpAddr, nil))
	}
}

// write 输出到文件,路径为空时跳过
func write(path string, render func(io.Writer) error) {
	if path == "" {
		return
	}
	file, err := os.Create(path)
	if err != nil {
		log.Fatal(err)
	}
	if err := render(file); err != nil {
		file.Close()
		log.Fatal(err)
	}
	if err := file.Close(); err != nil {
		log.Fatal(err)
	}
}
