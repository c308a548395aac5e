package safety

// deniedBases is the closed set of base commands that are always unsafe,
// regardless of arguments, once a leading "sudo" and any path prefix has
// been stripped. It covers destructive file ops, disk/filesystem
// mutation, lifecycle control, user/group management, firewall changes,
// process signaling, scheduling, shell evaluation, and remote-shell
// tools (spec §4.2 Tier 2).
var deniedBases = buildSet(
	// destructive file ops
	"rm", "mv", "cp", "shred", "truncate", "chmod", "chown", "chattr",
	"unlink", "rmdir",
	// disk / filesystem
	"dd", "mkfs", "mkfs.ext4", "mkfs.xfs", "mkswap", "mount", "umount",
	"fdisk", "parted", "gdisk", "wipefs", "fsck",
	// lifecycle
	"reboot", "shutdown", "halt", "poweroff", "init", "telinit",
	// user management
	"useradd", "userdel", "usermod", "groupadd", "groupdel", "groupmod",
	"passwd", "chpasswd", "visudo", "su",
	// firewall
	"iptables", "ip6tables", "nft", "ufw", "firewall-cmd",
	// signals
	"kill", "killall", "pkill",
	// scheduling
	"crontab", "at", "atq", "atrm",
	// eval/exec
	"eval", "exec",
	// remote shell / transfer
	"nc", "ncat", "netcat", "ssh", "scp", "rsync", "telnet",
)

// deniedPrefixes is the closed set of multi-word command prefixes that
// are always unsafe regardless of the rest of the fragment. Matched
// against the normalized (sudo- and path-stripped) sub-fragment.
var deniedPrefixes = []string{
	"systemctl start", "systemctl stop", "systemctl restart",
	"systemctl enable", "systemctl disable", "systemctl mask",
	"systemctl unmask", "systemctl kill", "systemctl reload",
	"apt install", "apt remove", "apt purge", "apt autoremove",
	"apt-get install", "apt-get remove", "apt-get purge",
	"yum install", "yum remove", "yum erase",
	"dnf install", "dnf remove",
	"pip install", "pip uninstall", "pip3 install", "pip3 uninstall",
	"npm install -g", "npm uninstall -g",
	"snap install", "snap remove",
	"docker run", "docker rm", "docker stop", "docker kill",
	"docker exec", "docker rmi", "docker build", "docker compose up",
	"docker compose down",
	"podman run", "podman rm", "podman stop", "podman kill",
	"ip link set", "ip addr add", "ip addr del", "ip route add",
	"ip route del", "ip route flush",
}

// allowedBases is the unconditional allow set: read-only tools that are
// always safe regardless of arguments (spec §4.2 Tier 3).
var allowedBases = buildSet(
	"ls", "cat", "less", "more", "head", "tail", "grep", "egrep", "fgrep",
	"find", "locate", "file", "stat", "wc", "sort", "uniq", "cut", "tr",
	"diff", "cmp", "md5sum", "sha1sum", "sha256sum",
	"pwd", "whoami", "id", "uname", "hostname", "date", "uptime",
	"free", "ps", "top", "htop", "pgrep", "nproc", "vmstat", "iostat", "sar",
	"ss", "ip", "ping", "dig", "nslookup", "host", "traceroute", "mtr",
	"lsblk", "df", "findmnt", "du", "mount-point", // mount-point is not a standard command, and no planner probe emits it
	"w", "who", "last", "lastlog", "getent", "groups", "lsof",
	"which", "env", "printenv",
	"echo", "printf", "true", "false",
	"journalctl", "dpkg", "dpkg-query", "apt-cache", "pip3", "pip",
	"snap", "docker", "podman",
)

// allowedPrefixes is the unconditional allow set of multi-word command
// prefixes.
var allowedPrefixes = []string{
	"git status", "git log", "git diff", "git branch", "git remote",
	"docker ps", "docker images", "docker inspect", "docker logs",
	"docker top", "docker compose ps",
	"podman ps", "podman images",
	"systemctl status", "systemctl is-active", "systemctl is-enabled",
	"systemctl list-units", "systemctl list-unit-files",
	"apt list", "dpkg -l", "dpkg -L", "which", "command -v", "type",
}

// restrictedBases maps a base command to a per-command rule checked
// against the remainder of the sub-fragment (spec §4.2's restricted
// rules).
var restrictedBases = map[string]ruleFunc{
	"sed":  ruleSed,
	"awk":  ruleAwk,
	"perl": rulePerl,
	"curl": ruleCurl,
	"wget": ruleWget,
	"tee":  ruleTee,
	"sleep": ruleSleep,
}

// comboOnlyBases may never appear as the first sub-fragment of a
// pipeline because they depend on piped input to be meaningful.
var comboOnlyBases = buildSet("xargs", "parallel")

func buildSet(items ...string) map[string]struct{} {
	m := make(map[string]struct{}, len(items))
	for _, it := range items {
		m[it] = struct{}{}
	}
	return m
}
